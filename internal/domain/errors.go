package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrSubmit        = errors.New("submit failed")
	ErrDelete        = errors.New("delete failed")
	ErrFetch         = errors.New("fetch failed")
)

// User-facing messages. Remote causes are collapsed onto one message per
// operation kind.
const (
	MsgValidation = "Name, ingredients, steps, and cuisine are required."
	MsgSubmit     = "Recipe already exists!"
	MsgDelete     = "Recipe does not exist!"
)

// UserMessage returns the error-slot text for err, or "" if err is not a
// kind the user is shown.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return MsgValidation
	case errors.Is(err, ErrSubmit):
		return MsgSubmit
	case errors.Is(err, ErrDelete):
		return MsgDelete
	default:
		return ""
	}
}
