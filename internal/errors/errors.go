package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services return these recognizable errors without coupling themselves to HTTP
// status codes; the API layer uses `errors.Is()` to map them onto responses.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation (empty credentials, blank message, unconfirmed
	// clear). Mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current state
	// of the conversation (a reply already pending, a capture session already
	// active). Mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the session is not authorized to perform
	// the requested action. Mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrUnsupported signifies that an optional runtime capability (voice
	// capture) is not available. Mapped to a 501 Not Implemented HTTP status.
	ErrUnsupported = errors.New("capability not supported")

	// ErrInternal signifies an unexpected server-side error, kept generic to
	// avoid leaking implementation details. Mapped to a 500 HTTP status.
	ErrInternal = errors.New("internal server error")
)
