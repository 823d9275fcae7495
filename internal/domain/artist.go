package domain

import (
	"strings"
	"time"
)

// Artist is a user's public profile. ID is the identity provider's subject.
type Artist struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	BioShort        string    `json:"bio_short,omitempty"`
	BioLong         string    `json:"bio_long,omitempty"`
	Location        string    `json:"location,omitempty"`
	Style           string    `json:"style,omitempty"`
	WebsiteURL      string    `json:"website_url,omitempty"`
	InstagramHandle string    `json:"instagram_handle,omitempty"`
	ContactEmail    string    `json:"contact_email,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	HeaderBannerURL string    `json:"header_banner_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ArtistSummary is the slice of a profile shown in listings.
type ArtistSummary struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	Location        string `json:"location,omitempty"`
	Style           string `json:"style,omitempty"`
	BioShort        string `json:"bio_short,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

func (a *Artist) Summary() ArtistSummary {
	return ArtistSummary{
		ID:              a.ID,
		Username:        a.Username,
		Name:            a.Name,
		Location:        a.Location,
		Style:           a.Style,
		BioShort:        a.BioShort,
		ProfileImageURL: a.ProfileImageURL,
	}
}

// DisplayName falls back to the username for profiles without a name.
func (s ArtistSummary) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}

// reservedUsernames collide with top-level routes of the web frontend.
var reservedUsernames = map[string]struct{}{
	"dashboard": {},
	"login":     {},
	"signup":    {},
	"news":      {},
	"artists":   {},
	"api":       {},
	"auth":      {},
	"404":       {},
}

func IsReservedUsername(username string) bool {
	_, ok := reservedUsernames[NormalizeUsername(username)]
	return ok
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeInstagramHandle strips whitespace and a leading "@".
func NormalizeInstagramHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
