package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain rule violations. Handlers translate these
// into client-visible rejections; none should escape the API boundary
// as an unhandled fault.
var (
	// ErrSelfFollow is returned when a user attempts to follow itself
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrAlreadyFollowing is returned when the follow edge already exists
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrNotFollowing is returned when no follow edge exists to remove
	ErrNotFollowing = errors.New("not following this user")

	// ErrDuplicateLike is returned when the (user, post) pairing already exists
	ErrDuplicateLike = errors.New("post already liked")

	// ErrNotLiked is returned when no like pairing exists to remove
	ErrNotLiked = errors.New("post not liked")

	// ErrNotFound is returned when a referenced entity is absent
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the actor lacks capability for the target
	ErrForbidden = errors.New("operation not permitted")

	// ErrUsernameTaken is returned when the username is already registered
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when the email is already registered
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError reports a malformed or too-short input field
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
