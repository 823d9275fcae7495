package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/service"
	"github.com/utafrali/artfolio/pkg/httputil"
	"github.com/utafrali/artfolio/pkg/pagination"
	"github.com/utafrali/artfolio/pkg/validator"
)

// NewsHandler serves the dashboard news editor and the public feed.
type NewsHandler struct {
	service NewsService
	logger  *slog.Logger
}

func NewNewsHandler(svc NewsService, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{service: svc, logger: logger}
}

// NewsRequest is the body of create and update. An empty status keeps the
// current one; new posts start as drafts.
type NewsRequest struct {
	Title            string `json:"title" validate:"required,max=200"`
	Content          string `json:"content" validate:"required,max=20000"`
	FeaturedImageURL string `json:"featured_image_url" validate:"omitempty,url"`
	ImageAlt         string `json:"image_alt" validate:"max=300"`
	ExternalLink     string `json:"external_link" validate:"omitempty,url"`
	LinkButtonText   string `json:"link_button_text" validate:"max=50"`
	Status           string `json:"status" validate:"omitempty,oneof=draft published"`
}

func (req *NewsRequest) input() *service.NewsInput {
	return &service.NewsInput{
		Title:            req.Title,
		Content:          req.Content,
		FeaturedImageURL: req.FeaturedImageURL,
		ImageAlt:         req.ImageAlt,
		ExternalLink:     req.ExternalLink,
		LinkButtonText:   req.LinkButtonText,
		Status:           domain.NewsStatus(req.Status),
	}
}

// ListMine handles GET /api/v1/me/news.
func (h *NewsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	posts, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, posts)
}

// Get handles GET /api/v1/me/news/{id}.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := httputil.ParseUUID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	post, err := h.service.Get(r.Context(), userID, id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, post)
}

// Create handles POST /api/v1/me/news.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req NewsRequest
	if err := validator.DecodeAndValidate(r.Body, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	post, err := h.service.Create(r.Context(), userID, req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, post)
}

// Update handles PUT /api/v1/me/news/{id}.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := httputil.ParseUUID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req NewsRequest
	if err := validator.DecodeAndValidate(r.Body, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	post, err := h.service.Update(r.Context(), userID, id.String(), req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, post)
}

// Publish handles POST /api/v1/me/news/{id}/publish.
func (h *NewsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Publish)
}

// Unpublish handles POST /api/v1/me/news/{id}/unpublish.
func (h *NewsHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Unpublish)
}

func (h *NewsHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID, id string) (*domain.NewsPost, error),
) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := httputil.ParseUUID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	post, err := apply(r.Context(), userID, id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, post)
}

// Delete handles DELETE /api/v1/me/news/{id}.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Feed handles GET /api/v1/news.
func (h *NewsHandler) Feed(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Feed(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// PublicPost handles GET /api/v1/news/{id}.
func (h *NewsHandler) PublicPost(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	post, err := h.service.PublicPost(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, post)
}
