// Package errors provides coded errors for the analysis engine. Structurally
// invalid input gets an invalid-argument code so the serving layer can map it
// to a client error; everything else is internal.
package errors

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// AppError wraps an errbuilder error with a stable display format.
type AppError struct {
	*errbuilder.ErrBuilder
}

// Error implements the error interface.
func (e *AppError) Error() string {
	codeStr := "INTERNAL_ERROR"
	if e.ErrBuilder.ErrCode() == errbuilder.CodeInvalidArgument {
		codeStr = "VALIDATION_ERROR"
	}
	return fmt.Sprintf("[%s] %s", codeStr, e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewValidationError reports structurally invalid engine input.
func NewValidationError(message string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)
	return &AppError{ErrBuilder: builder}
}

// NewInternalError reports an engine fault with its cause attached.
func NewInternalError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return &AppError{ErrBuilder: builder}
}

// IsValidation reports whether err is a validation error from this package.
func IsValidation(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ErrBuilder.ErrCode() == errbuilder.CodeInvalidArgument
	}
	return false
}
