package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForbidden indicates the actor is not allowed to perform the
	// operation. Handlers surface it generically so the existence of
	// other users' data is not leaked.
	ErrForbidden = errors.New("forbidden")
	// ErrNoOpenSession indicates the actor tried to log a workout
	// without an open gym session.
	ErrNoOpenSession = errors.New("no open session")
	// ErrSessionAlreadyOpen indicates the actor already has an open session.
	ErrSessionAlreadyOpen = errors.New("session already open")
	// ErrNoSessionToEnd indicates there is no open session to end.
	ErrNoSessionToEnd = errors.New("no session to end")
	// ErrSelfDeletion indicates an admin tried to delete their own account.
	ErrSelfDeletion = errors.New("cannot delete own account")
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserNotFound indicates the referenced account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrWeakPassword indicates the password is shorter than MinPasswordLength.
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// FieldError pins a validation failure to a specific input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
