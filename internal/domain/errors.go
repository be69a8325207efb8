package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError is a user-correctable input problem. No state was changed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// StorageError wraps a persistence failure for a key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DecodeError reports a stored or fetched document that does not match its type.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
