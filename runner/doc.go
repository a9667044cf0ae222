// Package runner executes workflow graphs node by node, producing a
// complete execution trace.
//
// The runner validates the graph, sorts it topologically so producers run
// before consumers, and dispatches each node to its block implementation
// from a [blocks.Registry]. Outputs flow downstream through fan-in
// assembly: a node with one inbound edge receives the upstream output
// directly, while a node with several receives a map keyed by target
// handle (or positional input{N} keys when handles are absent).
//
// The main entry points are [New] to construct a runner and [Runner.Run]
// to execute a graph. A run in flight can be interrupted cooperatively
// with [Runner.Stop].
//
// Key behaviors:
//   - Sequential execution in deterministic topological order
//   - Per-node timeout with detached cancellation of hung blocks
//   - Abort-on-first-failure by default, opt-in continue-on-error
//   - Partial trace returned alongside the error on abort or stop
//   - Per-node OnResult and OnProgress callbacks
//   - Full observability integration (spans, counters, histograms)
//
// Example:
//
//	workflowRunner := runner.New(builtin.Default())
//	executionTrace, err := workflowRunner.Run(ctx, workflowGraph, runner.Options{
//	    Timeout: 10 * time.Second,
//	    OnProgress: func(nodeID string, percent float64) {
//	        fmt.Printf("%s done (%.0f%%)\n", nodeID, percent)
//	    },
//	})
package runner
