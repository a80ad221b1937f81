package triagekit

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes an analysis failure for programmatic handling.
type ErrorKind string

const (
	// ErrorKindInput marks a missing or unreadable source file. Input
	// errors are the only fatal kind: they abort the whole analysis.
	ErrorKindInput ErrorKind = "input"

	// ErrorKindProvider marks a metadata provider failure. Non-fatal;
	// recorded inline in that provider's metadata slot.
	ErrorKindProvider ErrorKind = "provider"

	// ErrorKindParse marks malformed structure found while scanning a
	// container. Non-fatal; recorded as a finding.
	ErrorKindParse ErrorKind = "parse"

	// ErrorKindExternalTool marks a failed or timed-out external tool
	// invocation. Non-fatal; confined to the requesting provider.
	ErrorKindExternalTool ErrorKind = "external_tool"
)

// Sentinel errors for input failures.
var (
	ErrNotFound   = errors.New("file does not exist")
	ErrPermission = errors.New("permission denied")
	ErrIsDir      = errors.New("is a directory")
)

// AnalysisError records a categorized failure together with the operation
// and path that caused it.
type AnalysisError struct {
	Kind    ErrorKind
	Op      string
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s error: %s %s: %s", e.Kind, e.Op, e.Path, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError
func NewAnalysisError(kind ErrorKind, op, path, message string, err error) *AnalysisError {
	return &AnalysisError{
		Kind:    kind,
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// IsAnalysisError checks if an error is an AnalysisError
func IsAnalysisError(err error) bool {
	var analysisErr *AnalysisError
	return errors.As(err, &analysisErr)
}

// IsErrorOfKind checks if an error is an AnalysisError of the specified kind
func IsErrorOfKind(err error, kind ErrorKind) bool {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Kind == kind
	}
	return false
}

// IsInputError reports whether an error is fatal to an analysis.
func IsInputError(err error) bool {
	return IsErrorOfKind(err, ErrorKindInput)
}

// IsNotFound reports whether an error indicates the input path does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPermission reports whether an error indicates the input is unreadable
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}
