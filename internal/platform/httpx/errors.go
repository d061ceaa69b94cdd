package httpx

import (
	"errors"
	"net/http"

	"github.com/tracklet/tracklet/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807. The
// detail string is always the user-safe message, never the raw error.
func RespondError(w http.ResponseWriter, err error) {
	msg := shared.UserSafeMessage(err)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", msg)
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", msg)
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", msg)
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", msg)
	case errors.Is(err, shared.ErrUnavailable):
		Problem(w, http.StatusServiceUnavailable, "Unavailable", msg)
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
