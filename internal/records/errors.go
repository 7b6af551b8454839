package records

import "errors"

// Sentinel lookup failures. ErrEmptyTaxHistory is distinct from ErrNotFound:
// the building exists but has nothing to show.
var (
	ErrNotFound        = errors.New("no building record found")
	ErrEmptyTaxHistory = errors.New("no tax records for this building")
)

// ValidationError reports empty or missing required input. It is recoverable;
// the caller re-prompts.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
