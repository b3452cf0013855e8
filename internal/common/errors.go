package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error the way the API reports it.
type Kind string

const (
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not-found"
	KindInvalidArgument    Kind = "invalid-argument"
	KindInvariantViolation Kind = "invariant-violation"
	KindInvalidTransition  Kind = "invalid-transition"
	KindConflict           Kind = "conflict"
	KindUnavailable        Kind = "unavailable"
	KindInternal           Kind = "internal"
)

// Error carries a kind plus the offending field for contract errors.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func E(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Ef(kind Kind, field, message string) error {
	return &Error{Kind: kind, Field: field, Message: message}
}

// Wrap keeps the cause while classifying it.
func Wrap(kind Kind, err error, message string) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of an error; anything unclassified is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to the response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindInvariantViolation, KindInvalidTransition, KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
