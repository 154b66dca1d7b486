package catalog

import (
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/apperrors"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/logging"
)

// ConnectionError is the single failure shape of the introspection path.
// Driver text is preserved for operators but credentials are scrubbed
// before the message can reach a log line or an API response.
type ConnectionError struct {
	cause error
}

// NewConnectionError wraps a driver or network error from an engine adapter.
func NewConnectionError(cause error) *ConnectionError {
	return &ConnectionError{cause: cause}
}

func (e *ConnectionError) Error() string {
	return "Failed to connect to database: " + logging.SanitizeError(e.cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.cause
}

// Is lets errors.Is match the apperrors sentinel at the handler boundary.
func (e *ConnectionError) Is(target error) bool {
	return target == apperrors.ErrConnectionFailed
}
