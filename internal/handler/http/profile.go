package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/artfolio/internal/service"
	"github.com/utafrali/artfolio/pkg/httputil"
	"github.com/utafrali/artfolio/pkg/middleware"
	"github.com/utafrali/artfolio/pkg/validator"
)

const maxJSONBody = 1 << 20

// ProfileHandler serves the signed-in artist's own profile.
type ProfileHandler struct {
	service ProfileService
	logger  *slog.Logger
}

func NewProfileHandler(svc ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{service: svc, logger: logger}
}

// SaveProfileRequest is the body of PUT /api/v1/me/profile. An empty
// username is derived from the name.
type SaveProfileRequest struct {
	Username        string `json:"username" validate:"omitempty,min=3,max=30"`
	Name            string `json:"name" validate:"required,max=100"`
	BioShort        string `json:"bio_short" validate:"max=160"`
	BioLong         string `json:"bio_long" validate:"max=5000"`
	Location        string `json:"location" validate:"max=100"`
	Style           string `json:"style" validate:"max=50"`
	WebsiteURL      string `json:"website_url" validate:"omitempty,url"`
	InstagramHandle string `json:"instagram_handle" validate:"omitempty,handle"`
	ContactEmail    string `json:"contact_email" validate:"omitempty,email"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,url"`
	HeaderBannerURL string `json:"header_banner_url" validate:"omitempty,url"`
}

// GetProfile handles GET /api/v1/me/profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	artist, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, artist)
}

// SaveProfile handles PUT /api/v1/me/profile.
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req SaveProfileRequest
	if err := validator.DecodeAndValidate(r.Body, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	artist, err := h.service.SaveProfile(r.Context(), userID, &service.SaveProfileInput{
		Username:        req.Username,
		Name:            req.Name,
		BioShort:        req.BioShort,
		BioLong:         req.BioLong,
		Location:        req.Location,
		Style:           req.Style,
		WebsiteURL:      req.WebsiteURL,
		InstagramHandle: req.InstagramHandle,
		ContactEmail:    req.ContactEmail,
		ProfileImageURL: req.ProfileImageURL,
		HeaderBannerURL: req.HeaderBannerURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, artist)
}

// requireUser reads the authenticated subject. Routes are mounted behind
// middleware.Auth, so a missing subject means the router is misconfigured.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteErrorCode(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return "", false
	}
	return userID, true
}
