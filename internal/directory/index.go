// Package directory keeps the searchable in-memory index of artists behind
// the public directory.
package directory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/pagination"
)

// Index is safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	artists map[string]domain.ArtistSummary
}

func NewIndex() *Index {
	return &Index{artists: make(map[string]domain.ArtistSummary)}
}

// Index adds or replaces one artist. Summaries without a username are not
// listed and remove any previous entry.
func (x *Index) Index(_ context.Context, artist domain.ArtistSummary) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if artist.Username == "" {
		delete(x.artists, artist.ID)
		return nil
	}
	x.artists[artist.ID] = artist
	return nil
}

func (x *Index) Delete(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	delete(x.artists, id)
	return nil
}

// Replace swaps the whole index for artists.
func (x *Index) Replace(_ context.Context, artists []domain.ArtistSummary) error {
	next := make(map[string]domain.ArtistSummary, len(artists))
	for _, a := range artists {
		if a.Username != "" {
			next[a.ID] = a
		}
	}

	x.mu.Lock()
	x.artists = next
	x.mu.Unlock()
	return nil
}

func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.artists)
}

// Search returns one page of matching artists ordered by display name, and
// the total number of matches.
func (x *Index) Search(_ context.Context, q domain.DirectoryQuery, params pagination.Params) ([]domain.ArtistSummary, int, error) {
	x.mu.RLock()
	matched := make([]domain.ArtistSummary, 0, len(x.artists))
	for _, a := range x.artists {
		if q.Matches(a) {
			matched = append(matched, a)
		}
	}
	x.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		ni, nj := strings.ToLower(matched[i].DisplayName()), strings.ToLower(matched[j].DisplayName())
		if ni != nj {
			return ni < nj
		}
		return matched[i].Username < matched[j].Username
	})

	start, end := params.Window(len(matched))
	return matched[start:end], len(matched), nil
}
