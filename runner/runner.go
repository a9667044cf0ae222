package runner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/flowcanvas/flowcanvas/blocks"
	"github.com/flowcanvas/flowcanvas/core/trace"
	"github.com/flowcanvas/flowcanvas/graph"
	"github.com/flowcanvas/flowcanvas/observability"
)

// Runner executes workflow graphs sequentially in topological order,
// dispatching each node to its block implementation and recording every
// result into a trace.
//
// A Runner executes at most one graph at a time: a second concurrent Run
// fails immediately with ErrAlreadyRunning. Stop and Running are safe to
// call from other goroutines while a run is in flight.
type Runner struct {
	registry *blocks.Registry

	// provider is the observability provider configured via WithObserver.
	// Nil means the runner looks for one on the run context instead.
	provider observability.Provider

	// observer holds per-run observability state. Safe without a lock
	// because only one run is in flight at a time.
	observer observerState

	running       atomic.Bool
	stopRequested atomic.Bool
}

// New creates a Runner that dispatches node types against the given
// registry.
func New(registry *blocks.Registry, opts ...Option) *Runner {
	workflowRunner := &Runner{registry: registry}
	for _, applyOption := range opts {
		applyOption(workflowRunner)
	}
	return workflowRunner
}

// Running reports whether a run is currently in flight.
func (workflowRunner *Runner) Running() bool {
	return workflowRunner.running.Load()
}

// Stop requests that the current run halt. The request is cooperative: the
// run finishes the node in flight, then ends with ErrStopped at the next
// node boundary, returning the partial trace accumulated so far. Stop is a
// no-op when no run is in flight.
func (workflowRunner *Runner) Stop() {
	if workflowRunner.running.Load() {
		workflowRunner.stopRequested.Store(true)
	}
}

// Run executes the graph and returns the trace of everything that ran.
//
// The execution proceeds as follows:
//  1. Reject the call with ErrAlreadyRunning if a run is already in flight
//  2. Validate the graph; structural problems fail with *ValidationFailedError
//  3. Sort the nodes topologically so producers run before consumers
//  4. For each node: check the stop flag and context, assemble the fan-in
//     input from upstream outputs, dispatch to the registered block under
//     the per-node timeout, and record the result
//  5. Fire OnResult and OnProgress callbacks after each node
//  6. Return the completed trace with aggregate totals
//
// On failure the partial trace is returned together with the error, so
// callers can always inspect what ran. Only ErrAlreadyRunning and
// *ValidationFailedError return a nil trace.
func (workflowRunner *Runner) Run(ctx context.Context, workflowGraph *graph.Graph, options Options) (*trace.Trace, error) {
	if !workflowRunner.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer workflowRunner.running.Store(false)
	workflowRunner.stopRequested.Store(false)

	validation := graph.Validate(workflowGraph)
	if !validation.Valid {
		return nil, &ValidationFailedError{Errors: validation.Errors}
	}

	executionOrder, sortError := graph.TopologicalSort(workflowGraph)
	if sortError != nil {
		// Validate already rejects cyclic graphs, so this is unreachable in
		// practice; report it the same way for safety.
		return nil, &ValidationFailedError{Errors: []string{sortError.Error()}}
	}

	runStart := time.Now()
	executionTrace := trace.New()
	outputs := make(map[string]any, len(executionOrder))

	workflowRunner.observeRunStart(&ctx, workflowGraph, executionTrace, options)

	var failedNodes int
	for index, nodeID := range executionOrder {
		if stopError := workflowRunner.checkStop(ctx); stopError != nil {
			return workflowRunner.finishAborted(ctx, executionTrace, runStart, stopError)
		}

		graphNode := workflowGraph.Node(nodeID)
		nodeInput := assembleInput(workflowGraph, nodeID, outputs)

		result, nodeError := workflowRunner.executeNode(ctx, graphNode, nodeInput, options)

		executionTrace.Append(result)
		outputs[nodeID] = result.Output

		if options.OnResult != nil {
			options.OnResult(result)
		}
		if options.OnProgress != nil {
			options.OnProgress(nodeID, float64(index+1)/float64(len(executionOrder))*100)
		}

		if nodeError == nil && result.Failed() {
			nodeError = errors.New(result.Metadata.Error)
		}
		if nodeError != nil {
			// A dead run context means every remaining node would fail the
			// same way, so the policy does not apply: end as stopped.
			if contextError := ctx.Err(); contextError != nil {
				return workflowRunner.finishAborted(ctx, executionTrace, runStart,
					fmt.Errorf("%w: %v", ErrStopped, contextError))
			}
			failedNodes++
			if !options.ContinueOnError {
				return workflowRunner.finishAborted(ctx, executionTrace, runStart,
					&RunError{NodeID: nodeID, Err: nodeError})
			}
		}
	}

	executionTrace.TotalDuration = time.Since(runStart)
	executionTrace.Success = failedNodes == 0
	if failedNodes > 0 {
		executionTrace.Error = fmt.Sprintf("%d of %d nodes failed", failedNodes, len(executionOrder))
	}

	workflowRunner.observeRunCompleted(ctx, executionTrace)
	return executionTrace, nil
}

// checkStop returns the reason the run should halt, or nil to keep going.
// It is consulted once per node boundary.
func (workflowRunner *Runner) checkStop(ctx context.Context) error {
	if workflowRunner.stopRequested.Load() {
		return ErrStopped
	}
	if contextError := ctx.Err(); contextError != nil {
		return fmt.Errorf("%w: %v", ErrStopped, contextError)
	}
	return nil
}

// finishAborted closes out a run that ended early. The partial trace is
// returned together with the abort error so callers can inspect what ran.
func (workflowRunner *Runner) finishAborted(ctx context.Context, executionTrace *trace.Trace, runStart time.Time, abortError error) (*trace.Trace, error) {
	executionTrace.TotalDuration = time.Since(runStart)
	executionTrace.Success = false
	executionTrace.Error = abortError.Error()

	workflowRunner.observeRunFailed(ctx, abortError, executionTrace.TotalDuration)
	return executionTrace, abortError
}

// executeNode dispatches one node to its block and returns its recorded
// result. A failure never returns a nil result: dispatch misses, block
// errors, and timeouts all synthesize a result carrying the error message,
// so the trace stays complete either way.
func (workflowRunner *Runner) executeNode(ctx context.Context, graphNode *graph.Node, nodeInput any, options Options) (*trace.Result, error) {
	nodeStart := time.Now()

	nodeContext := ctx
	workflowRunner.observeNodeStart(&nodeContext, graphNode)

	block, registered := workflowRunner.registry.Get(graphNode.Type)
	if !registered {
		dispatchError := &UnknownBlockError{NodeID: graphNode.ID, BlockType: graphNode.Type}
		result := failedResult(graphNode, nodeInput, nodeStart, 0, dispatchError)
		workflowRunner.observeNodeFailed(nodeContext, graphNode.ID, dispatchError, 0)
		return result, dispatchError
	}

	executionContext := &blocks.ExecutionContext{
		NodeID:    graphNode.ID,
		NodeType:  graphNode.Type,
		Label:     graphNode.Data.Label,
		Input:     nodeInput,
		Timestamp: nodeStart,
		Position:  graphNode.Position,
		Params:    graphNode.Data.Params,
	}

	result, executionError := invokeBlock(nodeContext, block, executionContext, options.timeout())
	executionDuration := time.Since(nodeStart)

	if executionError != nil {
		result = failedResult(graphNode, nodeInput, nodeStart, executionDuration, executionError)
		workflowRunner.observeNodeFailed(nodeContext, graphNode.ID, executionError, executionDuration)
		return result, executionError
	}

	if result == nil {
		result = &trace.Result{}
	}

	// The runner owns the identity and timing fields; blocks only fill in
	// output and usage metadata.
	result.NodeID = graphNode.ID
	result.Input = nodeInput
	result.Metadata.Timestamp = nodeStart
	result.Metadata.Duration = executionDuration
	result.Metadata.NodeType = graphNode.Type

	if result.Failed() {
		workflowRunner.observeNodeFailed(nodeContext, graphNode.ID, errors.New(result.Metadata.Error), executionDuration)
	} else {
		workflowRunner.observeNodeCompleted(nodeContext, result)
	}

	return result, nil
}

// invokeBlock runs the block in its own goroutine so a hung implementation
// cannot stall the run past the timeout. On timeout the invocation is
// detached: its context is canceled so well-behaved blocks can unwind, but
// the runner does not wait for it.
func invokeBlock(ctx context.Context, block blocks.Block, executionContext *blocks.ExecutionContext, timeout time.Duration) (*trace.Result, error) {
	nodeContext, cancel := context.WithTimeout(ctx, timeout)

	type blockReturn struct {
		result *trace.Result
		err    error
	}

	// Buffered so the detached goroutine can always complete its send.
	returnChannel := make(chan blockReturn, 1)

	go func() {
		result, err := block.Execute(nodeContext, executionContext)
		returnChannel <- blockReturn{result: result, err: err}
	}()

	select {
	case blockResult := <-returnChannel:
		cancel()
		return blockResult.result, blockResult.err
	case <-nodeContext.Done():
		contextError := nodeContext.Err()
		cancel()
		if errors.Is(contextError, context.DeadlineExceeded) {
			return nil, errors.New("execution timeout")
		}
		return nil, contextError
	}
}

// failedResult synthesizes the trace entry for a node that did not produce
// a result of its own.
func failedResult(graphNode *graph.Node, nodeInput any, nodeStart time.Time, duration time.Duration, nodeError error) *trace.Result {
	return &trace.Result{
		NodeID: graphNode.ID,
		Input:  nodeInput,
		Metadata: trace.Metadata{
			Timestamp: nodeStart,
			Duration:  duration,
			NodeType:  graphNode.Type,
			Error:     nodeError.Error(),
		},
	}
}

// assembleInput builds the fan-in value a node receives from its upstream
// outputs: nil for source nodes, the single producer's output when exactly
// one edge points in, and a map keyed by target handle otherwise. Edges
// without a target handle fall back to positional input{N} keys, where N is
// the edge's index among the node's inbound edges in declaration order.
func assembleInput(workflowGraph *graph.Graph, nodeID string, outputs map[string]any) any {
	inboundEdges := workflowGraph.InboundEdges(nodeID)

	switch len(inboundEdges) {
	case 0:
		return nil
	case 1:
		return outputs[inboundEdges[0].Source]
	}

	fanIn := make(map[string]any, len(inboundEdges))
	for index, inboundEdge := range inboundEdges {
		key := inboundEdge.TargetHandle
		if key == "" {
			key = fmt.Sprintf("input%d", index)
		}
		fanIn[key] = outputs[inboundEdge.Source]
	}
	return fanIn
}
