package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error independently of its message.
type Kind int

const (
	// Failure is a collaborator failure the caller may retry.
	Failure Kind = iota
	// Unexpected is an unclassified internal error.
	Unexpected
	// Validation rejects the shape or values of the input.
	Validation
	// Conflict reports a uniqueness violation.
	Conflict
	// NotFound reports an absent referenced entity.
	NotFound
	// Unauthorized reports missing or invalid credentials.
	Unauthorized
	// Forbidden reports insufficient permissions.
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case Failure:
		return "failure"
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	default:
		return "unexpected"
	}
}

// Error is a business error carrying a stable code.
// Two errors are equal under errors.Is when their codes match, so package level
// values can be used as sentinels even when the description was formatted.
type Error struct {
	Kind        Kind   `json:"-"`
	Code        string `json:"code"`
	Description string `json:"error"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Withf returns a copy of e whose description is formatted with args.
func (e *Error) Withf(args ...any) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Description: fmt.Sprintf(e.Description, args...)}
}

func New(kind Kind, code, description string) *Error {
	return &Error{Kind: kind, Code: code, Description: description}
}

func NewFailure(code, description string) *Error {
	return New(Failure, code, description)
}

func NewUnexpected(code, description string) *Error {
	return New(Unexpected, code, description)
}

func NewValidation(code, description string) *Error {
	return New(Validation, code, description)
}

func NewConflict(code, description string) *Error {
	return New(Conflict, code, description)
}

func NewNotFound(code, description string) *Error {
	return New(NotFound, code, description)
}

func NewUnauthorized(code, description string) *Error {
	return New(Unauthorized, code, description)
}

func NewForbidden(code, description string) *Error {
	return New(Forbidden, code, description)
}

// KindOf returns the kind of the first *Error in err's chain, or Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}
