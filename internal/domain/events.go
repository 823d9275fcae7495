package domain

// Event types carried in the kafka envelope. Topics are named
// "artfolio.<aggregate>.<action>".
const (
	EventArtistUpdated    = "artist.updated"
	EventArtworkCreated   = "artwork.created"
	EventArtworkUpdated   = "artwork.updated"
	EventArtworkDeleted   = "artwork.deleted"
	EventArtworkReordered = "artwork.reordered"
	EventNewsPublished    = "news.published"
	EventNewsUnpublished  = "news.unpublished"
	EventNewsDeleted      = "news.deleted"
)

// ArtistUpdatedData is the payload of EventArtistUpdated.
type ArtistUpdatedData struct {
	ArtistSummary
}

type ArtworkEventData struct {
	ArtworkID string `json:"artwork_id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title,omitempty"`
}

type ArtworkReorderedData struct {
	UserID     string   `json:"user_id"`
	ArtworkIDs []string `json:"artwork_ids"`
}

type NewsEventData struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
	Title  string `json:"title,omitempty"`
}
