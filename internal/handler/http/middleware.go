package http

import (
	"net/http"
	"strings"

	"github.com/utafrali/artfolio/pkg/httputil"
)

// ContentTypeJSON rejects request bodies that are neither JSON nor
// multipart/form-data with 415.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "multipart/form-data") {
				httputil.WriteErrorCode(w, r, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
					"Content-Type must be application/json or multipart/form-data")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
