// Package pagination reads page/per_page query parameters and shapes paged
// results.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// FromRequest falls back to the defaults for missing, non-numeric or out of
// range values.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	p := DefaultParams()

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 && v <= MaxPerPage {
		p.PerPage = v
	}
	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Window returns the [start, end) slice bounds of this page within n items.
// Pages past the end yield an empty window.
func (p Params) Window(n int) (start, end int) {
	start = min(p.Offset, n)
	end = min(start+p.PerPage, n)
	return start, end
}

type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	if data == nil {
		data = []T{}
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	totalPages := (totalCount + perPage - 1) / perPage

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
