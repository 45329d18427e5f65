// Package output provides formatting utilities for CLI output.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sandrine-crypto/ganttkit/cmd/version"
)

// Exit codes for consistent error reporting.
const (
	ExitOK          = 0 // success
	ExitUserError   = 1 // bad flags, missing file, invalid spreadsheet
	ExitSystemError = 2 // IO error, network failure
)

// SystemError marks a failure of the machine rather than the input,
// so the process exits with ExitSystemError.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string { return e.Err.Error() }

func (e *SystemError) Unwrap() error { return e.Err }

// System wraps err as a SystemError. A nil err stays nil.
func System(err error) error {
	if err == nil {
		return nil
	}
	return &SystemError{Err: err}
}

// ExitCode maps an error to the process exit code. Anything not
// marked as a SystemError counts as a user error.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var sysErr *SystemError
	if errors.As(err, &sysErr) {
		return ExitSystemError
	}
	return ExitUserError
}

// JSONResult is the standard JSON output envelope for all commands.
type JSONResult struct {
	OK      bool        `json:"ok"`
	Command string      `json:"command"`
	Version string      `json:"version"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    int         `json:"code,omitempty"`
}

// PrintJSON writes a standard success JSON result to stdout.
func PrintJSON(cmd string, data interface{}) error {
	result := JSONResult{
		OK:      true,
		Command: cmd,
		Version: version.Version,
		Data:    data,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// PrintJSONError writes a standard error JSON result to stdout.
func PrintJSONError(cmd string, err error, code int) error {
	result := JSONResult{
		OK:      false,
		Command: cmd,
		Version: version.Version,
		Error:   err.Error(),
		Code:    code,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(result); encErr != nil {
		return fmt.Errorf("could not encode JSON error: %w", encErr)
	}
	return nil
}

// WriteError writes an error message to stderr.
func WriteError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
