package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/httputil"
	"github.com/utafrali/artfolio/pkg/pagination"
)

// PublicHandler serves the unauthenticated pages: microsites, the artist
// directory and, for the in-memory storage backend, uploaded images.
type PublicHandler struct {
	microsites MicrositeService
	directory  DirectoryService
	logger     *slog.Logger
}

func NewPublicHandler(microsites MicrositeService, directory DirectoryService, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{microsites: microsites, directory: directory, logger: logger}
}

// Microsite handles GET /api/v1/microsites/{username}.
func (h *PublicHandler) Microsite(w http.ResponseWriter, r *http.Request) {
	username := domain.NormalizeUsername(chi.URLParam(r, "username"))
	if username == "" {
		httputil.WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "username is required")
		return
	}

	site, err := h.microsites.Get(r.Context(), username)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, site)
}

// Artists handles GET /api/v1/artists?q=&location=&style=&page=&per_page=.
func (h *PublicHandler) Artists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.DirectoryQuery{
		Q:        q.Get("q"),
		Location: q.Get("location"),
		Style:    q.Get("style"),
	}

	result, err := h.directory.Search(r.Context(), query, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// ObjectSource is implemented by storage backends that keep object bytes
// in process.
type ObjectSource interface {
	Object(key string) (data []byte, contentType string, ok bool)
}

// MediaFiles serves GET /media/* from src.
func MediaFiles(src ObjectSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		data, contentType, ok := src.Object(key)
		if !ok {
			httputil.WriteErrorCode(w, r, http.StatusNotFound, "NOT_FOUND", "media not found")
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
