package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrUnknownMenuItem    = errors.New("unknown menu item")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrTransitionDenied   = errors.New("status transition not allowed")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrUnavailable        = errors.New("service unavailable")
)

// MissingFieldError reports a required order field left blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidFieldError reports a field that is present but malformed.
type InvalidFieldError struct {
	Field string
	Rule  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Rule)
}

// AuthError is returned by sign-in and sign-up. The message never tells which
// part of the credentials was wrong.
type AuthError struct {
	Reason error
}

func (e *AuthError) Error() string {
	return ErrInvalidCredentials.Error()
}

func (e *AuthError) Unwrap() error {
	return ErrInvalidCredentials
}

// PersistenceError wraps a failed write or read against the store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err unless it is already a domain error or nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrTransitionDenied) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
