// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to Status for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/services/inventory/domain"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Validation failures carry their per-field messages. Server errors are
// reported to the request's Sentry hub when one is attached and their detail
// is withheld from the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	resp := errorResponse{Error: err.Error()}

	var fields domain.FieldErrors
	if errors.As(err, &fields) {
		resp.Fields = fields
	}

	if status >= http.StatusInternalServerError {
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		}
		resp.Error = http.StatusText(status)
	}
	httpx.JSON(w, status, resp)
}

// Status returns the HTTP status code WriteError would use for err.
func Status(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, domain.ErrInvalidItem):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, auth.ErrAuthRejected):
		return http.StatusUnauthorized // 401
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge // 413
	case errors.Is(err, domain.ErrStorageIO):
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}
