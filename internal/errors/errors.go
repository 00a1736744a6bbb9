package errors

import (
	"errors"
	"fmt"
)

// Constraint names reported by ConstraintError.
const (
	ConstraintDuplicateEmail    = "duplicate_email"
	ConstraintDuplicateName     = "duplicate_name"
	ConstraintMissingRestaurant = "missing_restaurant"
)

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

var (
	// ErrDuplicateEmail matches any ConstraintError for an already registered e-mail.
	ErrDuplicateEmail = &ConstraintError{Constraint: ConstraintDuplicateEmail}
	// ErrDuplicateName matches any ConstraintError for an already used restaurant name.
	ErrDuplicateName = &ConstraintError{Constraint: ConstraintDuplicateName}
	// ErrMissingRestaurant matches any ConstraintError for a dangling restaurant reference.
	ErrMissingRestaurant = &ConstraintError{Constraint: ConstraintMissingRestaurant}

	// ErrDishNotFound is returned when a dish id does not exist.
	ErrDishNotFound = errors.New("dish not found")

	// ErrInvalidEmail is returned when no user is registered with the given e-mail.
	ErrInvalidEmail = &AuthError{Reason: "invalid_email"}
	// ErrInvalidPassword is returned when the password does not match the stored hash.
	ErrInvalidPassword = &AuthError{Reason: "invalid_password"}
)

// ConstraintError reports a uniqueness or referential-integrity violation raised by the datastore.
type ConstraintError struct {
	Constraint string
	Err        error
}

// NewConstraintError wraps a driver error under the given constraint name.
func NewConstraintError(constraint string, err error) *ConstraintError {
	return &ConstraintError{Constraint: constraint, Err: err}
}

func (e *ConstraintError) Error() string {
	return "constraint violation: " + e.Constraint
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Is matches another ConstraintError with the same constraint name.
func (e *ConstraintError) Is(target error) bool {
	t, ok := target.(*ConstraintError)
	return ok && t.Constraint == e.Constraint
}

// AuthError reports rejected credentials.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Reason
}

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Flash is a one-time notice shown on the next rendered page.
type Flash struct {
	Category string
	Text     string
}

// Success builds a success flash.
func Success(text string) Flash {
	return Flash{Category: FlashSuccess, Text: text}
}

// Danger builds a danger flash.
func Danger(text string) Flash {
	return Flash{Category: FlashDanger, Text: text}
}

// MapErrorToFlash maps domain errors to user-facing flash messages.
// The second return value is false for errors outside the taxonomy.
func MapErrorToFlash(err error) (Flash, bool) {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return Danger("This e-mail is already registered."), true
	case errors.Is(err, ErrDuplicateName):
		return Danger("A restaurant with this name already exists."), true
	case errors.Is(err, ErrMissingRestaurant):
		return Danger("The selected restaurant does not exist."), true
	case errors.Is(err, ErrDishNotFound):
		return Danger("The dish does not exist."), true
	case errors.Is(err, ErrInvalidEmail):
		return Danger("Invalid e-mail"), true
	case errors.Is(err, ErrInvalidPassword):
		return Danger("Invalid password"), true
	case errors.As(err, &validationErr):
		return Danger(fmt.Sprintf("Please check the %s field: %s.", validationErr.Field, validationErr.Reason)), true
	default:
		return Danger("Something went wrong, please try again."), false
	}
}
