package shared

import "errors"

var (
	// ErrInvalidCredentials is the unified login failure. Unknown email and
	// wrong password both map here so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound indicates the mutation target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("already exists")
	// ErrForbidden indicates the acting user does not own the target row.
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable indicates the backing store could not serve the request.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// UserSafeMessage maps an error to text that can be shown to the user
// without leaking internals or other users' row ownership.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrNotFound):
		return "The requested item no longer exists"
	case errors.Is(err, ErrDuplicate):
		return "That value is already taken"
	case errors.Is(err, ErrForbidden):
		return "You do not have access to that item"
	case errors.Is(err, ErrUnavailable):
		return "The service is temporarily unavailable, please try again"
	default:
		return "Something went wrong, please try again"
	}
}
