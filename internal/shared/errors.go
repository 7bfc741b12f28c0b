package shared

import "errors"

var (
	// ErrValidation indicates malformed or out-of-range user input. It is
	// raised at the workflow boundary before any write reaches the gateway.
	ErrValidation = errors.New("validation failed")
	// ErrStorage indicates a gateway read/write failure. Callers report it
	// and keep their prior in-memory state.
	ErrStorage = errors.New("storage failure")
	// ErrNotFound indicates a delete or update referencing a missing id.
	ErrNotFound = errors.New("not found")
)

// UserSafeMessage returns a message suitable for surfacing to the client.
// Storage detail is collapsed to a generic line.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return err.Error()
	case errors.Is(err, ErrStorage):
		return "storage unavailable, please retry"
	default:
		return "unexpected error"
	}
}
