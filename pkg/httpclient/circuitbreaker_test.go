package httpclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tripFastConfig(name string) CircuitBreakerConfig {
	cfg := DefaultCircuitBreakerConfig(name)
	cfg.MinRequests = 2
	cfg.Timeout = time.Minute
	return cfg
}

func TestCircuitBreaker_PassesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fine"))
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(New(fastConfig(0)), tripFastConfig("pass"), testLogger())
	resp, err := cb.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_TripsOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("db down"))
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(New(fastConfig(0)), tripFastConfig("trip"), testLogger())

	for i := 0; i < 2; i++ {
		_, err := cb.Get(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server error 500: db down")
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(New(fastConfig(0)), tripFastConfig("notfound"), testLogger())
	for i := 0; i < 5; i++ {
		resp, err := cb.Get(context.Background(), srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_Fallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(New(fastConfig(0)), tripFastConfig("fallback"), testLogger()).
		WithFallback(func(context.Context, error) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("cached")),
			}, nil
		})

	for i := 0; i < 2; i++ {
		_, _ = cb.Get(context.Background(), srv.URL)
	}

	resp, err := cb.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "cached", string(body))
}

func TestStateValue(t *testing.T) {
	assert.Equal(t, 0.0, stateValue(gobreaker.StateClosed))
	assert.Equal(t, 1.0, stateValue(gobreaker.StateHalfOpen))
	assert.Equal(t, 2.0, stateValue(gobreaker.StateOpen))
}
