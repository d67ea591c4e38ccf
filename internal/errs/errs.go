// Package errs is the application error type shared by services and
// transports. Transports render an Error as the JSON error envelope.
package errs

import (
	"errors"
	"net/http"
)

const (
	CodeInternal         = "Internal"
	CodeBadRequest       = "BadRequest"
	CodeMethodNotAllowed = "MethodNotAllowed"
	CodeNotFound         = "NotFound"
	CodeFetchFailed      = "FetchFailed"
	CodeUnsupportedFile  = "UnsupportedFile"
)

type Error interface {
	error
	Code() string
	Status() int
	Details() any
	Unwrap() error
}

type ErrorOpts struct {
	Code    string
	Status  int
	Message string
	Details any
}

func (o *ErrorOpts) empty() bool {
	return o.Code == "" && o.Status == 0 && o.Message == "" && o.Details == nil
}

type appError struct {
	code    string
	status  int
	message string
	details any
	cause   error
}

var _ Error = &appError{}

func (e *appError) Error() string { return e.message }
func (e *appError) Code() string  { return e.code }
func (e *appError) Status() int   { return e.status }
func (e *appError) Details() any  { return e.details }
func (e *appError) Unwrap() error { return e.cause }

func NewAppError(opts *ErrorOpts) Error {
	return build(nil, opts)
}

// WrapAppError keeps err as the cause. Empty opts fields fall back to an
// internal error carrying err's message.
func WrapAppError(err error, opts *ErrorOpts) Error {
	if err == nil {
		return nil
	}
	if opts == nil || opts.empty() {
		if e, ok := As(err); ok {
			return e
		}
	}
	return build(err, opts)
}

func build(cause error, opts *ErrorOpts) *appError {
	if opts == nil {
		opts = &ErrorOpts{}
	}
	e := &appError{
		code:    opts.Code,
		status:  opts.Status,
		message: opts.Message,
		details: opts.Details,
		cause:   cause,
	}
	if e.code == "" {
		e.code = CodeInternal
	}
	if e.status == 0 {
		e.status = http.StatusInternalServerError
	}
	if e.message == "" {
		if cause != nil {
			e.message = cause.Error()
		} else {
			e.message = http.StatusText(e.status)
		}
	}
	return e
}

func As(err error) (Error, bool) {
	var e Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func BadRequest(msg string, details any) Error {
	return NewAppError(&ErrorOpts{Code: CodeBadRequest, Status: http.StatusBadRequest, Message: msg, Details: details})
}
