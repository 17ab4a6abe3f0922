package cli

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-unshred/internal/unshred"
)

// ExitCode is a process exit status.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers I/O failures and anything unclassified.
	ExitGeneralError ExitCode = 1

	// ExitUsageError indicates bad arguments or an invalid config file.
	ExitUsageError ExitCode = 2

	// ExitReconstructionFailed indicates the unshredder rejected the image:
	// invalid dimensions, an indivisible strip width or failed detection.
	ExitReconstructionFailed ExitCode = 3
)

// CLIError carries an exit code alongside the error.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError without an underlying error.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps err.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// reconstructionError classifies an error from unshred.Reconstruct.
func reconstructionError(message string, err error) *CLIError {
	switch {
	case errors.Is(err, unshred.ErrInvalidDimensions),
		errors.Is(err, unshred.ErrIndivisibleWidth),
		errors.Is(err, unshred.ErrWidthDetectionFailed):
		return WrapCLIError(ExitReconstructionFailed, message, err)
	case errors.Is(err, unshred.ErrInvalidStripWidth):
		return WrapCLIError(ExitUsageError, message, err)
	}
	return WrapCLIError(ExitGeneralError, message, err)
}

// ExitCodeOf returns the exit code for err: the CLIError code when err is
// or wraps one, ExitGeneralError otherwise.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitGeneralError
}
