package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/service"
	"github.com/utafrali/artfolio/pkg/httputil"
)

type UploadHandler struct {
	service UploadService
	logger  *slog.Logger
}

func NewUploadHandler(svc UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{service: svc, logger: logger}
}

// Upload handles POST /api/v1/me/uploads (multipart/form-data with "file"
// and "kind").
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	// Allow 1MB on top of the file for the other form fields.
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(domain.MaxUploadSize); err != nil {
		httputil.WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_INPUT", "failed to parse multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_INPUT", "file is required: "+err.Error())
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	upload, err := h.service.Upload(r.Context(), userID, &service.UploadInput{
		Kind:        domain.UploadKind(r.FormValue("kind")),
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, upload)
}
