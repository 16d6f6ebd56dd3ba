package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping. Rule evaluation only ever
// produces Validation; the I/O layer converts repository and upstream
// failures into the remaining kinds before they reach a handler.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindRemoteService
	KindChainTransaction
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func RemoteService(msg string, err error) *Error {
	return &Error{Kind: KindRemoteService, Message: msg, Err: err}
}

func ChainTransaction(msg string, err error) *Error {
	return &Error{Kind: KindChainTransaction, Message: msg, Err: err}
}

// KindOf reports the kind of err, or KindRemoteService for errors that were
// never classified (an unclassified failure is by definition not the
// caller's fault).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRemoteService
}

func IsValidation(err error) bool {
	return errorKindIs(err, KindValidation)
}

func IsNotFound(err error) bool {
	return errorKindIs(err, KindNotFound)
}

func errorKindIs(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
