// internal/services/errors.go
package services

import (
	"errors"

	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

// Error kinds surfaced to the HTTP layer
var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// Error is a client-facing failure. Key is an i18n message key so the
// handler can render it in the caller's language.
type Error struct {
	Kind    error
	Key     string
	Args    []interface{}
	Details interface{}
}

func (e *Error) Error() string {
	return e.Message(i18n.DefaultLanguage)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func (e *Error) Message(lang string) string {
	return i18n.T(lang, e.Key, e.Args...)
}

func newError(kind error, key string, args ...interface{}) *Error {
	return &Error{Kind: kind, Key: key, Args: args}
}

// validationError wraps a go-playground/validator failure with per-field details.
func validationError(err error) *Error {
	return &Error{
		Kind:    ErrValidation,
		Key:     i18n.KeyValidationInvalid,
		Args:    []interface{}{"input"},
		Details: utils.GetValidationErrors(err),
	}
}

func validate(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return validationError(err)
	}
	return nil
}
