package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Graph construction errors
const (
	// ErrCodeCycle indicates the dependency graph contains a cycle.
	ErrCodeCycle ErrorCode = "CYCLE_DETECTED"
	// ErrCodeInvalidGraph indicates the graph is malformed (nil root,
	// nil deferred call, nil combine function).
	ErrCodeInvalidGraph ErrorCode = "INVALID_GRAPH"
)

// Scheduling errors
const (
	// ErrCodeTaskFailed indicates a task node's deferred call returned an error.
	ErrCodeTaskFailed ErrorCode = "TASK_FAILED"
	// ErrCodeDependencyFailed indicates a node failed because one of its
	// dependencies (direct or transitive) failed.
	ErrCodeDependencyFailed ErrorCode = "DEPENDENCY_FAILED"
	// ErrCodeStalled indicates the scheduler made no progress with work
	// outstanding. This signals an engine bug, never expected in correct
	// operation.
	ErrCodeStalled ErrorCode = "SCHEDULER_STALLED"
)

// Operation runner errors
const (
	// ErrCodeUnknownOperation indicates the operation id is not registered.
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"
	// ErrCodeOperationFailed indicates the underlying operation run failed.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"
	// ErrCodeTimeout indicates the operation ran past its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeOperationFailed: true,
	ErrCodeTimeout:         true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
