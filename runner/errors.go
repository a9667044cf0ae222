package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyRunning is returned by Run when a run is already in flight on
// the same Runner. The runner executes at most one graph at a time; callers
// wanting concurrent runs should create separate Runner instances.
var ErrAlreadyRunning = errors.New("a run is already in progress")

// ErrStopped is returned by Run when the run was interrupted, either by a
// call to Stop or by cancellation of the run context. The stop is
// cooperative: it takes effect at the next node boundary, and the partial
// trace accumulated so far is returned alongside this error.
var ErrStopped = errors.New("run stopped")

// ValidationFailedError is returned by Run when the graph fails structural
// validation before any node executes. No trace is produced.
type ValidationFailedError struct {
	// Errors holds all validation problems found, one message each.
	Errors []string
}

func (validationError *ValidationFailedError) Error() string {
	return "graph validation failed: " + strings.Join(validationError.Errors, "; ")
}

// UnknownBlockError indicates that a node's type has no implementation in
// the runner's block registry.
type UnknownBlockError struct {
	// NodeID identifies the node that could not be dispatched.
	NodeID string

	// BlockType is the type key that was not found in the registry.
	BlockType string
}

func (unknownBlockError *UnknownBlockError) Error() string {
	return fmt.Sprintf("node %q references unknown block type %q", unknownBlockError.NodeID, unknownBlockError.BlockType)
}

// RunError is returned by Run when a node fails and the run is configured
// to abort on error. The partial trace, including the failing node's result,
// is returned alongside it.
type RunError struct {
	// NodeID identifies the node whose failure aborted the run.
	NodeID string

	// Err is the underlying failure.
	Err error
}

func (runError *RunError) Error() string {
	return fmt.Sprintf("node %q failed: %v", runError.NodeID, runError.Err)
}

func (runError *RunError) Unwrap() error {
	return runError.Err
}
