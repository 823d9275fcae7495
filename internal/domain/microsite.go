package domain

import (
	"time"

	"github.com/utafrali/artfolio/internal/gallery"
)

// Microsite is everything the public page of one artist renders. Media is
// the lightbox collection built from Artworks in the same relative order;
// artworks without an id, image or title are skipped, so Media[i] and
// Artworks[i] are not the same artwork in general.
type Microsite struct {
	Artist      Artist              `json:"artist"`
	Artworks    []Artwork           `json:"artworks"`
	Media       []gallery.MediaItem `json:"media"`
	News        []NewsPost          `json:"news"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// NewMicrosite keeps only published news and never leaves a nil slice, so
// the JSON always carries arrays.
func NewMicrosite(artist Artist, artworks []Artwork, news []NewsPost, now time.Time) *Microsite {
	if artworks == nil {
		artworks = []Artwork{}
	}
	published := make([]NewsPost, 0, len(news))
	for _, p := range news {
		if p.IsPublished() {
			published = append(published, p)
		}
	}
	return &Microsite{
		Artist:      artist,
		Artworks:    artworks,
		Media:       MediaItems(artworks),
		News:        published,
		GeneratedAt: now.UTC(),
	}
}

// Featured is the first artwork, shown large on the page; ok is false for
// an empty gallery.
func (m *Microsite) Featured() (gallery.MediaItem, bool) {
	if len(m.Media) == 0 {
		return gallery.MediaItem{}, false
	}
	return m.Media[0], true
}

// MoreWorks is the gallery without the featured artwork.
func (m *Microsite) MoreWorks() []gallery.MediaItem {
	featured, ok := m.Featured()
	if !ok {
		return []gallery.MediaItem{}
	}
	return gallery.Without(m.Media, featured.ID)
}

// NewsMedia is the featured images of the published news, in feed order.
// Posts without an image are skipped, so indices do not follow News.
func (m *Microsite) NewsMedia() []gallery.MediaItem {
	items := make([]gallery.MediaItem, 0, len(m.News))
	for i := range m.News {
		if it, ok := m.News[i].MediaItem(); ok {
			items = append(items, it)
		}
	}
	return items
}
