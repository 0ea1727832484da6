package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit codes. A set that loads but is rejected by the target host
// exits 1; input the command cannot use at all exits 2.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // unsupported or unimplemented scenario, failed setup
	ExitCommandError = 2 // missing file, malformed set or INI, bad flag value
)

// ExitError is returned by commands that want a specific process exit code.
// main maps it with GetExitCode.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without an underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError that unwraps to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code of the first ExitError in err's chain, or
// ExitFailure for any other non-nil error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

const (
	statusOK    = "ok"
	statusError = "error"
)

// Response is the envelope every command prints under --format json, one
// compact document per line.
type Response struct {
	Status   string         `json:"status"`
	Data     any            `json:"data,omitempty"`
	ConfigID string         `json:"config_id,omitempty"`
	Error    *ResponseError `json:"error,omitempty"`
}

// ResponseError is the error member of a Response. Code is one of the
// ErrCode constants.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputFormatter writes command results to Writer and diagnostics to Diag.
// Diag falls back to Writer when unset; the root command always sets it to
// stderr so JSON on stdout stays parseable.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Diag    io.Writer
	Verbose bool
}

// JSON reports whether results are printed as Response envelopes.
func (f *OutputFormatter) JSON() bool {
	return f.Format == "json"
}

// Success prints data. In text mode data is printed with its default
// formatting; commands with a richer text rendering write it themselves.
func (f *OutputFormatter) Success(data any) error {
	return f.SuccessWithID("", data)
}

// SuccessWithID prints data for the composed configuration id. The id is
// carried in the envelope's config_id member, or on a leading
// "Configuration:" line in text mode.
func (f *OutputFormatter) SuccessWithID(id string, data any) error {
	if f.JSON() {
		return f.encode(Response{Status: statusOK, Data: data, ConfigID: id})
	}
	if id != "" {
		fmt.Fprintf(f.Writer, "Configuration: %s\n", id)
	}
	if data != nil {
		fmt.Fprintln(f.Writer, data)
	}
	return nil
}

// Error prints a coded failure. Text mode prints "Error [code]: message"
// on Writer; details are only shown with --verbose, on Diag.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.JSON() {
		return f.encode(Response{
			Status: statusError,
			Error:  &ResponseError{Code: code, Message: message, Details: details},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.diag(), "Details: %v\n", details)
	}
	return nil
}

// VerboseLog prints a progress line on Diag when --verbose is set.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.diag(), format+"\n", args...)
}

func (f *OutputFormatter) encode(resp Response) error {
	return json.NewEncoder(f.Writer).Encode(resp)
}

func (f *OutputFormatter) diag() io.Writer {
	if f.Diag != nil {
		return f.Diag
	}
	return f.Writer
}
