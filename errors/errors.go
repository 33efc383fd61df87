package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified error type for the engine.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error, e.g. the id and
	// name of the node the failure is attributable to.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// CodeOf returns the error code of err, or ErrCodeInternal if err is not
// an AppError. Returns the empty code for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether any error in err's chain is an AppError with the
// given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if stderrors.As(err, &appErr) {
			if appErr.Code == code {
				return true
			}
			err = appErr.Cause
			continue
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// --- Engine Error Constructors ---

// CycleDetected creates an AppError for a dependency cycle. The path lists
// node names from the first revisited node back to itself.
func CycleDetected(node string, path []string) *AppError {
	return &AppError{
		Code:    ErrCodeCycle,
		Message: fmt.Sprintf("node %q (transitively) depends on itself: %s", node, strings.Join(path, " -> ")),
		Details: map[string]any{"node": node, "path": path},
	}
}

// InvalidGraph creates an AppError for a malformed graph.
func InvalidGraph(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidGraph,
		Message: reason,
	}
}

// TaskFailed creates an AppError for a task whose deferred call failed.
func TaskFailed(node string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeTaskFailed,
		Message: fmt.Sprintf("task %q failed", node),
		Details: map[string]any{"node": node},
		Cause:   cause,
	}
}

// CombineFailed creates an AppError for a composite whose combining
// function returned an error.
func CombineFailed(node string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeTaskFailed,
		Message: fmt.Sprintf("combine for %q failed", node),
		Details: map[string]any{"node": node},
		Cause:   cause,
	}
}

// DependencyFailed creates an AppError for a node that failed because a
// dependency failed. The cause chains back to the originating TaskFailed.
func DependencyFailed(node, dependency string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeDependencyFailed,
		Message: fmt.Sprintf("node %q failed: dependency %q failed", node, dependency),
		Details: map[string]any{"node": node, "dependency": dependency},
		Cause:   cause,
	}
}

// SchedulerStalled creates an AppError for a scheduler that can make no
// progress while nodes are still pending.
func SchedulerStalled(pending int) *AppError {
	return &AppError{
		Code:    ErrCodeStalled,
		Message: fmt.Sprintf("no ready or running work but %d node(s) still pending", pending),
		Details: map[string]any{"pending": pending},
	}
}

// --- Runner Error Constructors ---

// UnknownOperation creates an AppError for an unregistered operation id.
func UnknownOperation(opID string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownOperation,
		Message: fmt.Sprintf("operation %q is not registered", opID),
		Details: map[string]any{"operation": opID},
	}
}

// OperationFailed creates an AppError for a failed operation run.
func OperationFailed(opID string, cause error) *AppError {
	return &AppError{
		Code:      ErrCodeOperationFailed,
		Message:   fmt.Sprintf("operation %q failed", opID),
		Retryable: true,
		Details:   map[string]any{"operation": opID},
		Cause:     cause,
	}
}

// Timeout creates an AppError for an operation that ran past its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("operation %q took too long", operation),
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// --- Validation Error Constructors ---

// InvalidInput creates an AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates an AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf("missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// Internal creates an AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "an unexpected error occurred",
		Cause:   cause,
	}
}
