package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/envcompose/internal/scenario"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeInvalidFlag = "E008" // Invalid flag value

	// Scenario errors
	ErrCodeUnknownKind    = "E201" // Tag outside the capability namespace
	ErrCodeUnsupported    = "E202" // Capability not supported on the target
	ErrCodeNotImplemented = "E203" // Recognized but unimplemented capability
	ErrCodeInvalidSet     = "E204" // Set document failed validation
	ErrCodeInvalidField   = "E205" // Custom field could not be parsed
	ErrCodeSetupFailed    = "E206" // Capability setup failed
)

var scenarioCodes = map[scenario.ErrorCode]string{
	scenario.ErrCodeUnknownKind:    ErrCodeUnknownKind,
	scenario.ErrCodeUnsupported:    ErrCodeUnsupported,
	scenario.ErrCodeNotImplemented: ErrCodeNotImplemented,
	scenario.ErrCodeInvalidSet:     ErrCodeInvalidSet,
	scenario.ErrCodeInvalidField:   ErrCodeInvalidField,
	scenario.ErrCodeSetupFailed:    ErrCodeSetupFailed,
}

// errorCode maps err to a CLI error code. Joined errors report the code of
// the first scenario error found.
func errorCode(err error) string {
	var se *scenario.Error
	if errors.As(err, &se) {
		if code, ok := scenarioCodes[se.Code]; ok {
			return code
		}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return ErrCodeNotFound
	}
	return ErrCodeGeneric
}

// exitCode separates check failures (exit 1) from command errors (exit 2).
func exitCode(code string) int {
	switch code {
	case ErrCodeUnsupported, ErrCodeNotImplemented, ErrCodeSetupFailed:
		return ExitFailure
	default:
		return ExitCommandError
	}
}

// failCommand reports err through the formatter and returns the matching
// ExitError.
func failCommand(formatter *OutputFormatter, message string, err error) error {
	code := errorCode(err)
	_ = formatter.Error(code, message+": "+err.Error(), nil)
	return WrapExitError(exitCode(code), code+": "+message, err)
}
