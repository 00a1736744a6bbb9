package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintError_Is(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.email")
	err := fmt.Errorf("create user: %w", NewConstraintError(ConstraintDuplicateEmail, cause))

	assert.True(t, errors.Is(err, ErrDuplicateEmail))
	assert.False(t, errors.Is(err, ErrDuplicateName))
	assert.True(t, errors.Is(err, cause))

	var ce *ConstraintError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, ConstraintDuplicateEmail, ce.Constraint)
}

func TestMapErrorToFlash(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		text     string
		expected bool
	}{
		{"duplicate email", NewConstraintError(ConstraintDuplicateEmail, nil), "This e-mail is already registered.", true},
		{"duplicate name", NewConstraintError(ConstraintDuplicateName, nil), "A restaurant with this name already exists.", true},
		{"missing restaurant", NewConstraintError(ConstraintMissingRestaurant, nil), "The selected restaurant does not exist.", true},
		{"dish not found", fmt.Errorf("update: %w", ErrDishNotFound), "The dish does not exist.", true},
		{"invalid email", ErrInvalidEmail, "Invalid e-mail", true},
		{"invalid password", ErrInvalidPassword, "Invalid password", true},
		{"validation", NewValidationError("price", "must not be negative"), "Please check the price field: must not be negative.", true},
		{"unknown", errors.New("driver: connection reset"), "Something went wrong, please try again.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flash, known := MapErrorToFlash(tt.err)
			assert.Equal(t, FlashDanger, flash.Category)
			assert.Equal(t, tt.text, flash.Text)
			assert.Equal(t, tt.expected, known)
		})
	}
}
