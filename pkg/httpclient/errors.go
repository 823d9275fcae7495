package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/artfolio/pkg/errors"
)

// errorEnvelope matches the {"error": {...}} body written by pkg/httputil.
type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes a non-2xx response body and turns
// it into an AppError when it carries the standard envelope.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned %d (reading body: %w)", upstream, resp.StatusCode, err)
	}

	var env errorEnvelope
	if json.Unmarshal(body, &env) != nil || env.Error == nil {
		return fmt.Errorf("%s returned %d: %s", upstream, resp.StatusCode, string(body))
	}
	return mapStatus(resp.StatusCode, env.Error.Code, env.Error.Message)
}

func mapStatus(status int, code, message string) error {
	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{Code: code, Message: message, Status: status, Err: apperrors.ErrNotFound}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusGone:
		return apperrors.Gone(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(message)
	case status >= 500:
		return fmt.Errorf("upstream error %d (%s): %s", status, code, message)
	default:
		return &apperrors.AppError{Code: code, Message: message, Status: status}
	}
}

// IsClientError reports whether status is a 4xx.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
