package bookingerr

import "errors"

// Kind is the stable machine-readable class of a booking engine error.
// Handlers map kinds to HTTP statuses; callers decide retry policy by kind.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindInUse             Kind = "in_use"
	KindInvalidTransition Kind = "invalid_transition"
	KindCapacity          Kind = "capacity"
	KindNotFound          Kind = "not_found"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func InUse(code, message string) *Error {
	return New(KindInUse, code, message)
}

func InvalidTransition(code, message string) *Error {
	return New(KindInvalidTransition, code, message)
}

func Capacity(code, message string) *Error {
	return New(KindCapacity, code, message)
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

// KindOf extracts the kind from any error in the chain.
func KindOf(err error) (Kind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}

// HasCode reports whether err carries the given business code.
func HasCode(err error, code string) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
