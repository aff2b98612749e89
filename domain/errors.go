package domain

import "errors"

// ErrorKind classifies a failure so handlers can map it to an HTTP status
// without matching on error strings.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidInput
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

func ErrUnauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func ErrForbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func ErrNotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func ErrConflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func ErrInvalidInput(msg string) *Error { return &Error{Kind: KindInvalidInput, Message: msg} }

func ErrInternal(err error) *Error { return &Error{Kind: KindInternal, Err: err} }

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
