package grimbound

import (
	"errors"
	"fmt"
)

// Sentinel errors for the rendering core.
var (
	// ErrNoCharacters is returned when a batch is started with an empty roster.
	ErrNoCharacters = errors.New("grimbound: roster is empty")

	// ErrNoSurface is returned when a Token is asked to encode a surface it
	// does not have.
	ErrNoSurface = errors.New("grimbound: token has no rendered surface")
)

// ValidationError reports input that fails pre-render validation: a missing
// character name, a non-positive DPI, an empty reminder text. Validation runs
// before any drawing begins and aborts only the offending unit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("grimbound: invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
