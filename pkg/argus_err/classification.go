// pkg/argus_err/classification.go
//
// Error classification with exit codes, layered on top of the
// UserError/expected-error infrastructure.

package argus_err

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - Input validation failures (exit 2)
	CategoryValidation
	// CategoryNetwork - Network/connectivity issues (exit 1)
	CategoryNetwork
	// CategoryUser - User cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - Bugs in argus itself (exit 3)
	CategoryInternal
	// CategoryDependency - Missing dependencies (exit 1)
	CategoryDependency
	// CategoryPermission - Permission denied (exit 1)
	CategoryPermission
)

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

func (e *ClassifiedError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// GetExitCode extracts an exit code from any error.
// Returns 0 for nil and for expected user errors, 1 for unclassified errors.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	if IsExpectedUserError(err) {
		return 0
	}

	return 1
}

// NewValidationError creates an error for input validation failures
func NewValidationError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Remediation: remediation,
	}
}

// NewDependencyError creates an error for missing dependencies
func NewDependencyError(dependency, operation string, remediation ...string) error {
	return &ClassifiedError{
		Category: CategoryDependency,
		Message: fmt.Sprintf("%s is required for %s but not found",
			dependency, operation),
		Remediation: remediation,
	}
}

// NewFilesystemError creates an error for filesystem issues
func NewFilesystemError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategorySystem,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewNetworkError creates an error for network issues
func NewNetworkError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryNetwork,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}
