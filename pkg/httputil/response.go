// Package httputil writes the JSON envelopes every endpoint answers with:
// {"data": ...} on success and {"error": {...}} on failure.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/utafrali/artfolio/pkg/errors"
	"github.com/utafrali/artfolio/pkg/logger"
	"github.com/utafrali/artfolio/pkg/validator"
)

type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON encodes v with status. Encoding errors are dropped because the
// header has already been sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps v in the data envelope.
func WriteData(w http.ResponseWriter, status int, v any) {
	WriteJSON(w, status, Response{Data: v})
}

// WriteErrorCode writes an error envelope with an explicit code and message.
func WriteErrorCode(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, Response{Error: &ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	}})
}

// WriteError renders err. AppErrors and validation errors keep their code
// and message; anything unrecognised becomes a logged 500 with a generic
// message. The request-scoped logger is preferred over fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	requestID := logger.CorrelationIDFromContext(r.Context())

	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{Error: &ErrorResponse{
			Code:      "VALIDATION_ERROR",
			Message:   "request validation failed",
			Fields:    valErr.Fields(),
			RequestID: requestID,
		}})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logInternal(r, err, fallback)
		}
		WriteJSON(w, appErr.Status, Response{Error: &ErrorResponse{
			Code: appErr.Code, Message: appErr.Message, RequestID: requestID,
		}})
		return
	}

	status := apperrors.HTTPStatus(err)
	var code, message string
	switch status {
	case http.StatusNotFound:
		code, message = "NOT_FOUND", "resource not found"
	case http.StatusConflict:
		code, message = "CONFLICT", "resource conflict"
	case http.StatusBadRequest:
		code, message = "INVALID_INPUT", err.Error()
	case http.StatusUnauthorized:
		code, message = "UNAUTHORIZED", "unauthorized"
	case http.StatusForbidden:
		code, message = "FORBIDDEN", "forbidden"
	default:
		internal := apperrors.Internal(err)
		status, code, message = internal.Status, internal.Code, internal.Message
		logInternal(r, err, fallback)
	}

	WriteJSON(w, status, Response{Error: &ErrorResponse{Code: code, Message: message, RequestID: requestID}})
}

func logInternal(r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}
	l.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

// ParseUUID parses a path parameter. On failure it writes a 400 and
// returns false so the handler can return.
func ParseUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(param)
	if err != nil {
		WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "invalid id: "+param)
		return uuid.Nil, false
	}
	return id, true
}
