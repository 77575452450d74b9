package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed failure returned by module operations. Only the HTTP
// layer turns Status into a response code.
type Error struct {
	Status int
	Code   string
	Err    error
	Fields map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(code string, msg string) *Error {
	return New(http.StatusNotFound, code, errors.New(msg))
}

func Validation(code string, err error, fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Err: err, Fields: fields}
}

func Conflict(code string, msg string) *Error {
	return New(http.StatusConflict, code, errors.New(msg))
}

func Unauthorized(code string, err error) *Error {
	return New(http.StatusUnauthorized, code, err)
}

func Forbidden(code string, msg string) *Error {
	return New(http.StatusForbidden, code, errors.New(msg))
}

func Internal(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

// StatusOf returns the HTTP status carried by err, or 500 for untyped errors.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool   { return err != nil && StatusOf(err) == http.StatusNotFound }
func IsValidation(err error) bool { return err != nil && StatusOf(err) == http.StatusBadRequest }
func IsConflict(err error) bool   { return err != nil && StatusOf(err) == http.StatusConflict }
