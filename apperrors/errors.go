// Package apperrors defines the errors a request can fail with. Each one
// carries an HTTP status and the fixed message clients see; the cause stays
// server side.
package apperrors

import (
	"errors"
	"net/http"
)

const (
	MsgBadRequest          = "Bad Request"
	MsgNotFound            = "Not Found"
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgUnprocessableEntity = "Unprocessable Entity"
	MsgInternal            = "Internal Server Error"
)

type Error struct {
	Code     int
	Message  string
	Problems []string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(err error) *Error {
	return &Error{Code: http.StatusBadRequest, Message: MsgBadRequest, Err: err}
}

// Validation is a bad request listing every problem found in the input.
func Validation(problems []string) *Error {
	return &Error{
		Code:     http.StatusBadRequest,
		Message:  MsgBadRequest,
		Problems: problems,
		Err:      errors.New("validation failed"),
	}
}

func NotFound(err error) *Error {
	return &Error{Code: http.StatusNotFound, Message: MsgNotFound, Err: err}
}

func MethodNotAllowed(err error) *Error {
	return &Error{Code: http.StatusMethodNotAllowed, Message: MsgMethodNotAllowed, Err: err}
}

func UnprocessableEntity(err error) *Error {
	return &Error{Code: http.StatusUnprocessableEntity, Message: MsgUnprocessableEntity, Err: err}
}

func Internal(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}

// FromStatus maps any HTTP status onto the five codes the API answers with.
func FromStatus(code int, err error) *Error {
	switch {
	case code == http.StatusNotFound:
		return NotFound(err)
	case code == http.StatusMethodNotAllowed:
		return MethodNotAllowed(err)
	case code == http.StatusUnprocessableEntity:
		return UnprocessableEntity(err)
	case code >= 400 && code < 500:
		return BadRequest(err)
	default:
		return Internal(err)
	}
}

// As returns err as an *Error, treating anything unclassified as internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
