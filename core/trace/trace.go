package trace

import (
	"time"

	"github.com/google/uuid"
)

// Metadata carries the bookkeeping attached to a single node result.
// Timestamp and Duration are always stamped by the runner; the remaining
// fields are optional and filled in by the block implementation.
type Metadata struct {
	// Timestamp is the instant the node started executing.
	Timestamp time.Time `json:"timestamp"`

	// Duration is the wall-clock time the node took to execute.
	Duration time.Duration `json:"duration"`

	// NodeType is the block-type key the node was dispatched on.
	NodeType string `json:"node_type,omitempty"`

	// Tokens is the number of tokens the block reports having consumed.
	Tokens int `json:"tokens,omitempty"`

	// APICalls is the number of external API calls the block reports.
	APICalls int `json:"api_calls,omitempty"`

	// Error holds the failure message when the node did not complete cleanly.
	// Empty means the node succeeded.
	Error string `json:"error,omitempty"`

	// Extra carries arbitrary block-specific key-value pairs such as model
	// names or cache statistics.
	Extra map[string]any `json:"extra,omitempty"`
}

// Result is the output record for one executed node. It is created exactly
// once per node per run and must not be mutated after the runner records it.
type Result struct {
	// NodeID identifies the node this result belongs to.
	NodeID string `json:"node_id"`

	// Input is the fan-in value the node received: nil for source nodes,
	// the single upstream output for one inbound edge, or a map keyed by
	// target handle for multiple inbound edges.
	Input any `json:"input"`

	// Output is the value the block produced. Nil when the node failed.
	Output any `json:"output"`

	// Metadata holds timing, usage, and error bookkeeping.
	Metadata Metadata `json:"metadata"`
}

// Failed reports whether this result records an application-level error.
func (result *Result) Failed() bool {
	return result.Metadata.Error != ""
}

// Trace is the ordered log of all per-node results for one run, plus
// aggregate metrics. One instance exists per run; the runner owns it for the
// run's lifetime and hands it to the evaluator afterwards.
type Trace struct {
	// RunID uniquely identifies the run that produced this trace.
	RunID string `json:"run_id"`

	// Results holds one entry per executed node, in completion order.
	Results []*Result `json:"results"`

	// TotalTokens is the sum of Metadata.Tokens across all results.
	TotalTokens int `json:"total_tokens"`

	// TotalAPICalls is the sum of Metadata.APICalls across all results.
	TotalAPICalls int `json:"total_api_calls"`

	// TotalDuration is the wall-clock duration of the whole run, measured
	// from run entry.
	TotalDuration time.Duration `json:"total_duration"`

	// Success is true only when every node executed without error and the
	// run was neither stopped nor aborted.
	Success bool `json:"success"`

	// Error describes why the run failed or was stopped. Empty on success.
	Error string `json:"error,omitempty"`
}

// New creates an empty trace with a fresh run ID.
func New() *Trace {
	return &Trace{
		RunID:   uuid.NewString(),
		Results: make([]*Result, 0),
	}
}

// Append records a result and folds its token and API-call usage into the
// trace totals.
func (executionTrace *Trace) Append(result *Result) {
	executionTrace.Results = append(executionTrace.Results, result)
	executionTrace.TotalTokens += result.Metadata.Tokens
	executionTrace.TotalAPICalls += result.Metadata.APICalls
}

// ErrorCount returns the number of results that carry an application error.
func (executionTrace *Trace) ErrorCount() int {
	count := 0
	for _, result := range executionTrace.Results {
		if result.Failed() {
			count++
		}
	}
	return count
}

// Result returns the recorded result for the given node ID, or nil when the
// node did not execute in this run.
func (executionTrace *Trace) Result(nodeID string) *Result {
	for _, result := range executionTrace.Results {
		if result.NodeID == nodeID {
			return result
		}
	}
	return nil
}

// Last returns the most recently recorded result, or nil for an empty trace.
func (executionTrace *Trace) Last() *Result {
	if len(executionTrace.Results) == 0 {
		return nil
	}
	return executionTrace.Results[len(executionTrace.Results)-1]
}
