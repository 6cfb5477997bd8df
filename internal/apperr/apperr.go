// Package apperr defines the error kinds shared across the service layer.
// Handlers and tests match kinds with errors.Is rather than string compares.
package apperr

import (
	"errors"
	"fmt"
)

// Base errors every service failure unwraps to.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrStorage         = errors.New("storage failure")
)

// kindWrap carries a caller-facing message while unwrapping to one of the
// base errors above. The wrapped error plays no part in the message.
type kindWrap struct {
	message string
	err     error
}

func (w kindWrap) Error() string {
	return w.message
}

func (w kindWrap) Unwrap() error {
	return w.err
}

func wrapf(kind error, format string, args ...any) error {
	if len(args) == 0 {
		return kindWrap{message: format, err: kind}
	}
	return kindWrap{message: fmt.Sprintf(format, args...), err: kind}
}

// NewInvalidArgumentf returns an error that formats as the given text and
// unwraps as ErrInvalidArgument.
func NewInvalidArgumentf(format string, args ...any) error {
	return wrapf(ErrInvalidArgument, format, args...)
}

// NewNotFoundf returns an error that formats as the given text and unwraps
// as ErrNotFound.
func NewNotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

// NewAlreadyExistsf returns an error that formats as the given text and
// unwraps as ErrAlreadyExists.
func NewAlreadyExistsf(format string, args ...any) error {
	return wrapf(ErrAlreadyExists, format, args...)
}

// NewUnauthorizedf returns an error that formats as the given text and
// unwraps as ErrUnauthorized.
func NewUnauthorizedf(format string, args ...any) error {
	return wrapf(ErrUnauthorized, format, args...)
}

// NewForbiddenf returns an error that formats as the given text and unwraps
// as ErrForbidden.
func NewForbiddenf(format string, args ...any) error {
	return wrapf(ErrForbidden, format, args...)
}

// NewStoragef returns an error that formats as the given text and unwraps
// as ErrStorage.
func NewStoragef(format string, args ...any) error {
	return wrapf(ErrStorage, format, args...)
}
