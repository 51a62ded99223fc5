package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error for transport-level status mapping.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
)

// Error is a request-scoped, non-retryable failure surfaced to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError reports malformed or semantically invalid input.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports a missing entity of the given type.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewForbiddenError reports an authorization failure.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewConflictError reports a state conflict such as a duplicate unique value
// or a lost concurrent update.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInvalidStateError reports a disallowed booking status transition. The
// message names the current status.
func NewInvalidStateError(current string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("cannot change status of a booking in status: %s", current),
	}
}

// NewUnknownStateError reports an unrecognized listing state token. The
// original input is echoed as received.
func NewUnknownStateError(state string) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf("Unknown state: %s", state)}
}

// IsKind reports whether err is a domain Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}
