// Package domain defines the core data model of the hashgen pipeline.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a pipeline error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "HG-CONF-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Configuration Errors (CONF)
// ============================================================================

var (
	// ErrInvalidLayout indicates token or digest sizes are out of range.
	ErrInvalidLayout = NewDomainError("HG-CONF-4000", "invalid record layout")

	// ErrInvalidConcurrency indicates a non-positive worker count.
	ErrInvalidConcurrency = NewDomainError("HG-CONF-4001", "concurrency must be positive")

	// ErrUnknownAlgorithm indicates an unregistered digest algorithm.
	ErrUnknownAlgorithm = NewDomainError("HG-CONF-4002", "unknown digest algorithm")

	// ErrDigestTooLong indicates the digest size exceeds the algorithm output.
	ErrDigestTooLong = NewDomainError("HG-CONF-4003", "digest size exceeds algorithm output")

	// ErrInvalidConfig wraps aggregated configuration problems.
	ErrInvalidConfig = NewDomainError("HG-CONF-4004", "invalid configuration")
)

// ============================================================================
// I/O Errors (IO)
// ============================================================================

var (
	// ErrSpill indicates a spill file could not be written.
	ErrSpill = NewDomainError("HG-IO-5000", "spill failed")

	// ErrMerge indicates spill files could not be merged into the output.
	ErrMerge = NewDomainError("HG-IO-5001", "merge failed")

	// ErrCorruptOutput indicates an output file violates the record format.
	ErrCorruptOutput = NewDomainError("HG-IO-5002", "corrupt output file")
)

// ============================================================================
// Storage Errors (STOR)
// ============================================================================

var (
	// ErrReportNotFound indicates the requested run report does not exist.
	ErrReportNotFound = NewDomainError("HG-STOR-4040", "run report not found")
)
