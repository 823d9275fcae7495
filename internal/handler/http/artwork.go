package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/artfolio/internal/service"
	"github.com/utafrali/artfolio/pkg/httputil"
	"github.com/utafrali/artfolio/pkg/validator"
)

// ArtworkHandler serves the dashboard gallery of the signed-in artist.
type ArtworkHandler struct {
	service ArtworkService
	logger  *slog.Logger
}

func NewArtworkHandler(svc ArtworkService, logger *slog.Logger) *ArtworkHandler {
	return &ArtworkHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

type ArtworkRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"required,url"`
	AltText     string `json:"alt_text" validate:"max=300"`
	YearCreated *int   `json:"year_created" validate:"omitempty,gte=1000,lte=9999"`
	Medium      string `json:"medium" validate:"max=100"`
	Dimensions  string `json:"dimensions" validate:"max=100"`
	Price       *int64 `json:"price" validate:"omitempty,gte=0"`
	Available   bool   `json:"available"`
}

func (req *ArtworkRequest) input() *service.ArtworkInput {
	return &service.ArtworkInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		AltText:     req.AltText,
		YearCreated: req.YearCreated,
		Medium:      req.Medium,
		Dimensions:  req.Dimensions,
		Price:       req.Price,
		Available:   req.Available,
	}
}

// ReorderRequest lists every artwork id of the gallery in display order.
type ReorderRequest struct {
	ArtworkIDs []string `json:"artwork_ids" validate:"required,unique,dive,uuid"`
}

// --- Handlers ---

// List handles GET /api/v1/me/artworks.
func (h *ArtworkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	artworks, err := h.service.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, artworks)
}

// Get handles GET /api/v1/me/artworks/{id}.
func (h *ArtworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := httputil.ParseUUID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	artwork, err := h.service.Get(r.Context(), userID, id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, artwork)
}

// Create handles POST /api/v1/me/artworks.
func (h *ArtworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req ArtworkRequest
	if err := validator.DecodeAndValidate(r.Body, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	artwork, err := h.service.Create(r.Context(), userID, req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, artwork)
}

// Update handles PUT /api/v1/me/artworks/{id}. The body replaces every
// editable field.
func (h *ArtworkHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := httputil.ParseUUID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req ArtworkRequest
	if err := validator.DecodeAndValidate(r.Body, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	artwork, err := h.service.Update(r.Context(), userID, id.String(), req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, artwork)
}

// Delete handles DELETE /api/v1/me/artworks/{id}.
func (h *ArtworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := httputil.ParseUUID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PUT /api/v1/me/artworks/order.
func (h *ArtworkHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req ReorderRequest
	if err := validator.DecodeAndValidate(r.Body, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.Reorder(r.Context(), userID, req.ArtworkIDs); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	artworks, err := h.service.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, artworks)
}
