package executor

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for executor lifecycle misuse.
var (
	// ErrPlanNotBuilt is returned by Run when Plan has not been called.
	ErrPlanNotBuilt = errors.New("execution plan not built: call Plan first")
	// ErrPlanAlreadyBuilt is returned by Plan when called more than once.
	ErrPlanAlreadyBuilt = errors.New("execution plan already built")
	// ErrAlreadyRun is returned by Run when the executor has already been consumed.
	ErrAlreadyRun = errors.New("executor already ran")
)

// DuplicateIdentifierError reports a task declaring the same identifier twice,
// regardless of access kind.
type DuplicateIdentifierError struct {
	TaskID     int    // Index of the offending task
	Identifier string // The duplicated identifier
}

// Error implements the error interface for DuplicateIdentifierError.
func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("task %d declares usage of parameter %q multiple times", e.TaskID, e.Identifier)
}

// EmptyIdentifierError reports a declared identifier that is the empty string.
type EmptyIdentifierError struct {
	TaskID int // Index of the offending task
}

// Error implements the error interface for EmptyIdentifierError.
func (e *EmptyIdentifierError) Error() string {
	return fmt.Sprintf("task %d declares usage of an empty parameter name", e.TaskID)
}

// SizeMismatchError reports a task count that does not match the declaration
// list length at construction time.
type SizeMismatchError struct {
	Tasks        int // Number of tasks supplied
	Declarations int // Length of the declaration list
}

// Error implements the error interface for SizeMismatchError.
func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("got %d tasks but %d declarations: every task needs a declaration", e.Tasks, e.Declarations)
}

// AlreadyDispatchedError reports an attempt to take a task that is not in
// the waiting state. This indicates a caller or scheduler bug.
type AlreadyDispatchedError struct {
	TaskID int
}

// Error implements the error interface for AlreadyDispatchedError.
func (e *AlreadyDispatchedError) Error() string {
	return fmt.Sprintf("task %d was already dispatched", e.TaskID)
}

// DeadlockError reports that the wave scheduler could not find any eligible
// task while unassigned tasks remain. Inputs that pass validation can never
// trigger this; it indicates an internal consistency failure.
type DeadlockError struct {
	Assigned int // Tasks already placed into waves
	Total    int // Total task count
}

// Error implements the error interface for DeadlockError.
func (e *DeadlockError) Error() string {
	return fmt.Sprintf("wave planning deadlock: no eligible task with %d of %d assigned", e.Assigned, e.Total)
}

// TaskError represents a task that terminated abnormally during execution.
// It records which task failed, in which wave, and when.
type TaskError struct {
	TaskID    int       // ID of the task that failed
	Wave      int       // Index of the wave the task ran in
	Message   string    // Human-readable error message
	Err       error     // Underlying error (optional)
	Timestamp time.Time // When the error occurred
}

// NewTaskError creates a new TaskError with the current timestamp.
func NewTaskError(taskID, wave int, msg string, err error) *TaskError {
	return &TaskError{
		TaskID:    taskID,
		Wave:      wave,
		Message:   msg,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface for TaskError.
func (e *TaskError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "wave %d: task %d: %s", e.Wave, e.TaskID, e.Message)
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// IsTaskError checks if the error is or wraps a TaskError.
func IsTaskError(err error) bool {
	if err == nil {
		return false
	}
	var te *TaskError
	return errors.As(err, &te)
}

// IsValidationError checks if the error is or wraps a declaration
// validation failure.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var dup *DuplicateIdentifierError
	var empty *EmptyIdentifierError
	return errors.As(err, &dup) || errors.As(err, &empty)
}
