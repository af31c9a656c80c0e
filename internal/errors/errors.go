package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorValidation = 5   // Indicates the requested path could not be converted.
	ExitErrorEngine     = 6   // Indicates the automation engine could not start.
	ExitErrorPartial    = 7   // Indicates that at least one file failed to convert.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrBatchRunning is returned when a batch is requested while another one
// is still running. Requests are rejected, never queued.
var ErrBatchRunning = errors.New("a conversion is already running")

// ErrFileNotFound is the cause carried by FileNotFoundError.
var ErrFileNotFound = errors.New("file not found")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents a batch request that failed validation before
// the engine was started: a missing path, an unsupported extension or a
// folder without workbooks.
type ValidationError struct {
	// Field is the name of the input that failed validation.
	Field string
	// Message explains the validation failure. It is also the batch digest.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// EngineUnavailableError reports that the automation engine could not be
// started for a batch. NotRegistered is set when the failure matched a known
// "engine not installed / automation class not registered" signature.
type EngineUnavailableError struct {
	// Engine is the name of the backend that failed to start.
	Engine string
	// NotRegistered is true for the recognised not-installed signatures.
	NotRegistered bool
	// Cause is the error returned by the engine starter.
	Cause error
}

// Error returns a message naming the engine and the underlying cause.
func (e EngineUnavailableError) Error() string {
	if e.NotRegistered {
		return fmt.Sprintf("%s engine is not installed or not registered: %v", e.Engine, e.Cause)
	}
	return fmt.Sprintf("%s engine could not be started: %v", e.Engine, e.Cause)
}

// Unwrap returns the starter error.
func (e EngineUnavailableError) Unwrap() error { return e.Cause }

// FileConversionError encapsulates a per-file open, export or close failure.
// It never aborts a batch; it is recorded in the tally and the digest.
type FileConversionError struct {
	// Path is the workbook that failed.
	Path string
	// Op is the engine operation that failed ("open", "export", "close").
	Op string
	// Cause is the underlying engine error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e FileConversionError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e FileConversionError) Unwrap() error { return e.Cause }

// FileNotFoundError is the per-file failure raised when an input disappears
// between enumeration and conversion.
type FileNotFoundError struct {
	Path string
}

func (e FileNotFoundError) Error() string { return ErrFileNotFound.Error() }

func (e FileNotFoundError) Unwrap() error { return ErrFileNotFound }

// BatchAbortedError reports an unexpected failure in the middle of a batch.
// The counts accumulated so far are still reported.
type BatchAbortedError struct {
	// Reason is the recovered panic value or error text.
	Reason string
}

// Error returns the abort reason.
func (e BatchAbortedError) Error() string { return e.Reason }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps the outcome of a batch to a process exit code.
//
// Parameters:
//   - batchErr: The batch-fatal error of the run (nil when the batch ran).
//   - failCount: The number of files that failed to convert.
//
// Returns:
//   - int: The exit code to report to the OS.
func ExitCodeFor(batchErr error, failCount int) int {
	var (
		validationErr ValidationError
		engineErr     EngineUnavailableError
	)
	switch {
	case batchErr == nil && failCount == 0:
		return ExitSuccess
	case batchErr == nil:
		return ExitErrorPartial
	case errors.As(batchErr, &validationErr):
		return ExitErrorValidation
	case errors.As(batchErr, &engineErr):
		return ExitErrorEngine
	case IsContextError(batchErr):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
