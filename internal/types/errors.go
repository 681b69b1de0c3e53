package types

import (
	"errors"
	"net/http"
)

// Kind classifies failures at the request boundary
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUpstream
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindParse:
		return "parse"
	default:
		return "internal"
	}
}

// Error is the application error carried up to the HTTP layer
type Error struct {
	Kind    Kind
	Step    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to an HTTP status. Upstream failures collapse to 500.
func (e *Error) Status() int {
	if e.Kind == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func UpstreamError(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

func ParseError(msg string, err error) *Error {
	return &Error{Kind: KindParse, Message: msg, Err: err}
}

func InternalError(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// WithStep tags the error with the pipeline step that produced it
func WithStep(err error, step string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		cp := *appErr
		cp.Step = step
		return &cp
	}
	return &Error{Kind: KindInternal, Step: step, Err: err}
}

// AsError converts any error into an *Error, defaulting to internal
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError("", err)
}
