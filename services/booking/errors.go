package booking

import (
	"errors"
	"fmt"
)

// Error codes carried by booking operations. Handlers map them to HTTP status.
const (
	CodeNotFound     = "notFound"
	CodeConflict     = "conflict"
	CodeInvalidInput = "invalidInput"
	CodeForbidden    = "forbidden"
)

// Error is a coded error returned by the booking services.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewInvalidInputError(msg string) error {
	return &Error{Code: CodeInvalidInput, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func codeIs(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsNotFound(err error) bool     { return codeIs(err, CodeNotFound) }
func IsConflict(err error) bool     { return codeIs(err, CodeConflict) }
func IsInvalidInput(err error) bool { return codeIs(err, CodeInvalidInput) }
func IsForbidden(err error) bool    { return codeIs(err, CodeForbidden) }
