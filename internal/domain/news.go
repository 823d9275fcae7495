package domain

import (
	"time"

	"github.com/utafrali/artfolio/internal/gallery"
)

type NewsStatus string

const (
	NewsDraft     NewsStatus = "draft"
	NewsPublished NewsStatus = "published"
)

func (s NewsStatus) Valid() bool {
	return s == NewsDraft || s == NewsPublished
}

type NewsPost struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	FeaturedImageURL string     `json:"featured_image_url,omitempty"`
	ImageAlt         string     `json:"image_alt,omitempty"`
	ExternalLink     string     `json:"external_link,omitempty"`
	LinkButtonText   string     `json:"link_button_text,omitempty"`
	Status           NewsStatus `json:"status"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (p *NewsPost) IsPublished() bool {
	return p.Status == NewsPublished
}

// Publish marks the post published. PublishedAt is stamped on the first
// publish only, so unpublishing and republishing keeps the original date.
func (p *NewsPost) Publish(now time.Time) {
	p.Status = NewsPublished
	if p.PublishedAt == nil {
		t := now.UTC()
		p.PublishedAt = &t
	}
}

func (p *NewsPost) Unpublish() {
	p.Status = NewsDraft
}

// MediaItem exposes the featured image to the lightbox. Posts without an
// image report false.
func (p *NewsPost) MediaItem() (gallery.MediaItem, bool) {
	if p.FeaturedImageURL == "" {
		return gallery.MediaItem{}, false
	}
	alt := p.ImageAlt
	if alt == "" {
		alt = p.Title
	}
	item := gallery.MediaItem{
		ID:       p.ID,
		ImageURL: p.FeaturedImageURL,
		Title:    p.Title,
		AltText:  alt,
	}
	if p.PublishedAt != nil {
		item.Year = p.PublishedAt.Year()
	}
	return item, item.Valid()
}

// NewsFeedItem is a published post with its author, as listed in the public
// feed.
type NewsFeedItem struct {
	NewsPost
	Author ArtistSummary `json:"author"`
}
