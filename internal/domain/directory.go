package domain

import "strings"

// DirectoryQuery filters the artist directory. Q matches name or username
// and Location matches as case-insensitive substrings; Style must match
// exactly, ignoring case. Empty fields match everything.
type DirectoryQuery struct {
	Q        string
	Location string
	Style    string
}

func (q DirectoryQuery) Matches(a ArtistSummary) bool {
	if needle := strings.ToLower(strings.TrimSpace(q.Q)); needle != "" {
		if !strings.Contains(strings.ToLower(a.Name), needle) &&
			!strings.Contains(strings.ToLower(a.Username), needle) {
			return false
		}
	}
	if loc := strings.ToLower(strings.TrimSpace(q.Location)); loc != "" {
		if !strings.Contains(strings.ToLower(a.Location), loc) {
			return false
		}
	}
	if style := strings.TrimSpace(q.Style); style != "" {
		if !strings.EqualFold(a.Style, style) {
			return false
		}
	}
	return true
}
