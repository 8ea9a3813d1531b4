package codescan

import (
	"errors"
	"fmt"
)

// ErrorType categorizes failures so batch drivers can tell apart conditions
// that abort the whole run from conditions that only skip one repository.
type ErrorType string

const (
	ErrorTypeBadRepoSpec ErrorType = "bad_repo_spec"
	ErrorTypeQuery       ErrorType = "query"
	ErrorTypeList        ErrorType = "list"
	ErrorTypeDecode      ErrorType = "decode"
	ErrorTypeDelete      ErrorType = "delete"
	ErrorTypeCheckout    ErrorType = "checkout"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// ScanError is a structured error from a code-scanning operation. Message
// carries the collaborator's own diagnostic text verbatim when the failure
// originated in an external process.
type ScanError struct {
	Type     ErrorType
	Message  string
	Cause    error
	Resource string
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// Fatal reports whether the error must abort the whole batch rather than
// skip the current repository. Metadata and language queries feed every
// later decision, and a decode failure means data integrity cannot be
// assumed, so both end the run.
func (e *ScanError) Fatal() bool {
	switch e.Type {
	case ErrorTypeBadRepoSpec, ErrorTypeQuery, ErrorTypeDecode:
		return true
	}
	return false
}

// NewScanError creates a ScanError with the given type and message.
func NewScanError(errorType ErrorType, message string, cause error) *ScanError {
	return &ScanError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// WrapError wraps an error into a ScanError scoped to a resource. An error
// that is already a ScanError gains the resource scope and keeps its type.
func WrapError(errorType ErrorType, err error, resource string) *ScanError {
	if err == nil {
		return nil
	}

	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		if scanErr.Resource == "" {
			scanErr.Resource = resource
		}
		return scanErr
	}

	return &ScanError{
		Type:     errorType,
		Message:  err.Error(),
		Cause:    err,
		Resource: resource,
	}
}

// IsFatal reports whether err carries a batch-aborting ScanError.
func IsFatal(err error) bool {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Fatal()
	}
	return false
}
