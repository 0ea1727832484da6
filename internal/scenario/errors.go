package scenario

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes composition errors.
type ErrorCode string

const (
	// ErrCodeUnknownKind indicates a tag outside the capability namespace.
	ErrCodeUnknownKind ErrorCode = "UNKNOWN_KIND"

	// ErrCodeUnsupported indicates a capability the target cannot run.
	ErrCodeUnsupported ErrorCode = "UNSUPPORTED"

	// ErrCodeNotImplemented indicates a recognized placeholder capability.
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// ErrCodeSetupFailed indicates a capability could not acquire its resources.
	ErrCodeSetupFailed ErrorCode = "SETUP_FAILED"

	// ErrCodeInvalidField indicates a custom field that cannot be parsed.
	ErrCodeInvalidField ErrorCode = "INVALID_FIELD"

	// ErrCodeInvalidSet indicates a set document that fails validation.
	ErrCodeInvalidSet ErrorCode = "INVALID_SET"
)

// Error is a composition error tied to a capability kind.
type Error struct {
	Code    ErrorCode
	Kind    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Kind != "" {
		msg = fmt.Sprintf("%s (kind=%s)", msg, e.Kind)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsUnknownKind reports whether err is, or wraps, an unknown kind error.
func IsUnknownKind(err error) bool { return hasCode(err, ErrCodeUnknownKind) }

// IsUnsupported reports whether err is, or wraps, an unsupported capability error.
func IsUnsupported(err error) bool { return hasCode(err, ErrCodeUnsupported) }

// IsNotImplemented reports whether err is, or wraps, a not implemented error.
func IsNotImplemented(err error) bool { return hasCode(err, ErrCodeNotImplemented) }

// IsSetupFailed reports whether err is, or wraps, a setup failure.
func IsSetupFailed(err error) bool { return hasCode(err, ErrCodeSetupFailed) }

func newUnknownKindError(kind string) *Error {
	return &Error{
		Code:    ErrCodeUnknownKind,
		Kind:    kind,
		Message: "no capability registered under this tag",
	}
}

func newFieldError(kind, field string, err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidField,
		Kind:    kind,
		Message: fmt.Sprintf("field %q", field),
		Err:     err,
	}
}
