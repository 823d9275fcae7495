package domain

import (
	"time"

	"github.com/utafrali/artfolio/internal/gallery"
)

type Artwork struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url"`
	AltText     string `json:"alt_text,omitempty"`
	YearCreated *int   `json:"year_created,omitempty"`
	Medium      string `json:"medium,omitempty"`
	Dimensions  string `json:"dimensions,omitempty"`
	// Price is in minor currency units; nil means not for sale or on request.
	Price     *int64    `json:"price,omitempty"`
	Available bool      `json:"available"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MediaItem converts the artwork into the form the lightbox browses. Alt
// text defaults to the title.
func (a *Artwork) MediaItem() gallery.MediaItem {
	item := gallery.MediaItem{
		ID:          a.ID,
		ImageURL:    a.ImageURL,
		Title:       a.Title,
		Medium:      a.Medium,
		Dimensions:  a.Dimensions,
		Description: a.Description,
		AltText:     a.AltText,
	}
	if a.YearCreated != nil {
		item.Year = *a.YearCreated
	}
	if item.AltText == "" {
		item.AltText = a.Title
	}
	return item
}

// MediaItems converts artworks in order, dropping any that lack an id, an
// image or a title.
func MediaItems(artworks []Artwork) []gallery.MediaItem {
	items := make([]gallery.MediaItem, 0, len(artworks))
	for i := range artworks {
		item := artworks[i].MediaItem()
		if item.Valid() {
			items = append(items, item)
		}
	}
	return items
}
