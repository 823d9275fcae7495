package gallery

// MediaItem is one entry of a browsable collection. ID, ImageURL and Title
// are always set; the rest are optional and zero when unknown. Items are
// built once where data is fetched and treated as immutable afterwards.
type MediaItem struct {
	ID          string `json:"id"`
	ImageURL    string `json:"image_url"`
	Title       string `json:"title"`
	Year        int    `json:"year,omitempty"`
	Medium      string `json:"medium,omitempty"`
	Dimensions  string `json:"dimensions,omitempty"`
	Description string `json:"description,omitempty"`
	AltText     string `json:"alt_text,omitempty"`
}

// Valid reports whether the required fields are present.
func (m MediaItem) Valid() bool {
	return m.ID != "" && m.ImageURL != "" && m.Title != ""
}

// Without returns a copy of items minus the entry with the given id, keeping
// order. Listing surfaces use it for "more works" strips that leave out the
// featured item.
func Without(items []MediaItem, id string) []MediaItem {
	out := make([]MediaItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
