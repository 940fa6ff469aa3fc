package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("record not found")

	// ErrAliasExists is returned by stores when the alias unique constraint rejects an insert.
	ErrAliasExists = errors.New("shortened url already exists")
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnreachable
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by every service operation.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindUnknown {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, KindUnknown when err carries none.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnknown
}

func NewValidationError(messages []string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation error: " + strings.Join(messages, ", "),
	}
}

func NewNotFoundError() *Error {
	return &Error{Kind: KindNotFound, Message: "Shortened link not found", Err: ErrNotFound}
}

func NewConflictError() *Error {
	return &Error{Kind: KindConflict, Message: "Shortened URL already exists", Err: ErrAliasExists}
}

func NewUnreachableError() *Error {
	return &Error{Kind: KindUnreachable, Message: "Target URL is not accessible or invalid"}
}

func NewUnknownError(message string, err error) *Error {
	return &Error{Kind: KindUnknown, Message: message, Err: err}
}
