package runner

import (
	"time"

	"github.com/flowcanvas/flowcanvas/core/trace"
	"github.com/flowcanvas/flowcanvas/observability"
)

// DefaultTimeout is the per-node execution timeout applied when
// Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Option is a functional option for configuring Runner behavior.
// Options are applied once at construction via New.
type Option func(*Runner)

// WithObserver attaches an observability provider to the runner. Every run
// then emits spans, metrics, and structured logs for the run as a whole and
// for each node. Without an observer the runner falls back to any provider
// found on the run context, and stays silent when neither is present.
//
// Example:
//
//	workflowRunner := runner.New(registry,
//	    runner.WithObserver(slogobs.NewFromEnv()),
//	)
func WithObserver(provider observability.Provider) Option {
	return func(workflowRunner *Runner) {
		workflowRunner.provider = provider
	}
}

// Options configures a single call to Run. The zero value is valid: nodes
// get DefaultTimeout, the run aborts at the first failing node, and no
// callbacks fire.
type Options struct {
	// Timeout is the maximum duration a single node may execute. Zero or
	// negative means DefaultTimeout. A node exceeding it is recorded as
	// failed with an "execution timeout" error; its invocation is detached
	// with a canceled context rather than awaited.
	Timeout time.Duration

	// ContinueOnError keeps the run going after a node fails. Downstream
	// nodes still execute and see a nil output from the failed upstream.
	// The final trace then contains a result for every node and reports
	// Success=false. When false (the default) the run aborts at the first
	// failure and Run returns the partial trace with a *RunError.
	ContinueOnError bool

	// OnResult, when set, is invoked synchronously with each node's result
	// immediately after it is recorded, before OnProgress.
	OnResult func(result *trace.Result)

	// OnProgress, when set, is invoked synchronously after each node
	// finishes with the node's ID and the overall completion percentage
	// (completed / total * 100).
	OnProgress func(nodeID string, percent float64)
}

// timeout returns the effective per-node timeout.
func (options Options) timeout() time.Duration {
	if options.Timeout > 0 {
		return options.Timeout
	}
	return DefaultTimeout
}
