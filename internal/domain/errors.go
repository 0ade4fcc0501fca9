package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidTransition = errors.New("invalid transition")
)

// ValidationError names the request fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

func Validationf(fields ...string) error { return &ValidationError{Fields: fields} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
