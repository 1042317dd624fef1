package common

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrRepositoryAbsent indicates an operation that needs a git repository
	// was invoked outside of one.
	ErrRepositoryAbsent = errors.New("not in a git repository")
	// ErrInstallConflict indicates a hook destination is already populated.
	ErrInstallConflict = errors.New("hook already exists")
	// ErrDuplicateValue indicates a configuration value is already registered.
	ErrDuplicateValue = errors.New("value already registered")
)

// Process exit codes. Scans that fail inside the matching engine exit with
// the engine's own failure code so callers can tell a broken pattern apart
// from a prohibited match.
const (
	ExitClean       = 0
	ExitViolation   = 1
	ExitEngineFault = 2
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ViolationError is returned when scanned content matched one or more
// prohibited patterns after allowed-pattern filtering.
type ViolationError struct {
	Lines []string // formatted as location:lineno:text
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("matched %d prohibited line(s)", len(e.Lines))
}

// NewViolationError creates a violation error from formatted match lines.
func NewViolationError(lines []string) *ViolationError {
	return &ViolationError{Lines: lines}
}

// EngineFaultError wraps a failure of the pattern matching engine itself,
// e.g. a malformed expression. It is never folded into a clean or dirty
// scan result.
type EngineFaultError struct {
	Err error
}

func (e *EngineFaultError) Error() string {
	return fmt.Sprintf("matching engine fault: %v", e.Err)
}

func (e *EngineFaultError) Unwrap() error {
	return e.Err
}

// NewEngineFaultError wraps err as a fatal matching engine failure.
func NewEngineFaultError(err error) *EngineFaultError {
	return &EngineFaultError{Err: err}
}

// ExitCode maps an error to the exit status contract of the hook pipeline.
func ExitCode(err error) int {
	if err == nil {
		return ExitClean
	}
	var engineFault *EngineFaultError
	if errors.As(err, &engineFault) {
		return ExitEngineFault
	}
	return ExitViolation
}
