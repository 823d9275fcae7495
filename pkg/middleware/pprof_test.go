package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestIPAllowlist(t *testing.T) {
	tests := []struct {
		name   string
		cidrs  []string
		remote string
		want   int
	}{
		{"loopback allowed", []string{"127.0.0.0/8"}, "127.0.0.1:1234", http.StatusOK},
		{"outside range", []string{"10.0.0.0/8"}, "192.168.1.1:1234", http.StatusForbidden},
		{"second cidr", []string{"10.0.0.0/8", "192.168.0.0/16"}, "192.168.4.2:80", http.StatusOK},
		{"invalid cidr skipped", []string{"garbage", "10.0.0.0/8"}, "10.1.1.1:80", http.StatusOK},
		{"ipv6", []string{"::1/128"}, "[::1]:8080", http.StatusOK},
		{"no port", []string{"127.0.0.0/8"}, "127.0.0.1", http.StatusOK},
		{"ipv4-mapped ipv6", []string{"127.0.0.0/8"}, "[::ffff:127.0.0.1]:80", http.StatusOK},
		{"empty list denies", nil, "127.0.0.1:80", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
			req.RemoteAddr = tt.remote
			rec := httptest.NewRecorder()
			IPAllowlist(tt.cidrs, discardLogger())(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
			}
		})
	}
}

func TestRegisterPprof(t *testing.T) {
	r := chi.NewRouter()
	RegisterPprof(r, []string{"127.0.0.0/8"}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil)
	req.RemoteAddr = "127.0.0.1:5000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil)
	req.RemoteAddr = "8.8.8.8:5000"
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
