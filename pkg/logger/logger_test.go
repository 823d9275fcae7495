package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewWithWriter_TagsService(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("artfolio", "info", &buf).Info("started")

	out := decodeLine(t, &buf)
	assert.Equal(t, "artfolio", out["service"])
	assert.Equal(t, "started", out["msg"])
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("artfolio", "warn", &buf).Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	NewText("artfolio-cli", "info", &buf).Info("fetched", slog.Int("items", 3))
	assert.Contains(t, buf.String(), "service=artfolio-cli")
	assert.Contains(t, buf.String(), "items=3")
}

func TestWithContext_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("artfolio", "info", &buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled,
	}))
	ctx = WithCorrelationID(ctx, "req-1")
	ctx = WithUserID(ctx, "user-9")

	WithContext(ctx, l).Info("hello")

	out := decodeLine(t, &buf)
	assert.Equal(t, "req-1", out["correlation_id"])
	assert.Equal(t, "user-9", out["user_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", out["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", out["span_id"])
}

func TestWithContext_Empty(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("artfolio", "info", &buf)
	assert.Same(t, l, WithContext(context.Background(), l))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, l, FromContext(NewContext(context.Background(), l)))
}

func TestContextAccessors_Missing(t *testing.T) {
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
	assert.Empty(t, UserIDFromContext(context.Background()))
}
