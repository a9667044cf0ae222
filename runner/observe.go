package runner

import (
	"context"
	"time"

	"github.com/flowcanvas/flowcanvas/core/trace"
	"github.com/flowcanvas/flowcanvas/graph"
	"github.com/flowcanvas/flowcanvas/internal/utils"
	"github.com/flowcanvas/flowcanvas/observability"
)

// Semantic conventions for runner observability attributes.
const (
	// spanRunExecute is the span name for the entire run.
	spanRunExecute = "run.execute"

	// spanNodeExecute is the span name for individual node execution.
	spanNodeExecute = "run.node.execute"

	// attrRunID identifies the run.
	attrRunID = "run.id"

	// attrNodeID identifies the node within the graph.
	attrNodeID = "run.node.id"

	// attrNodeType is the block type the node dispatched on.
	attrNodeType = "run.node.type"

	// attrNodeStatus is the terminal status of a node.
	attrNodeStatus = "run.node.status"

	// attrTotalNodes is the number of nodes in the graph.
	attrTotalNodes = "run.total_nodes"

	// attrContinueOnError is the configured failure policy.
	attrContinueOnError = "run.continue_on_error"

	// metricRunDuration is the histogram for total run duration.
	metricRunDuration = "flowcanvas.run.duration"

	// metricNodeDuration is the histogram for individual node duration.
	metricNodeDuration = "flowcanvas.node.duration"

	// metricNodeCount is the counter for node executions by status.
	metricNodeCount = "flowcanvas.node.count"
)

const (
	nodeStatusCompleted = "completed"
	nodeStatusFailed    = "failed"
)

// observerState holds the provider and root span for the current run. It is
// populated at the start of Run and valid for the run's duration.
type observerState struct {
	// provider is the resolved observability provider. Nil means
	// observability is disabled for this run, with zero overhead.
	provider observability.Provider

	// rootSpan is the top-level span for the entire run.
	rootSpan observability.Span
}

// observeRunStart resolves the observability provider, opens the root span,
// and logs the run configuration. The context is updated in place so the
// span and provider propagate to node execution.
func (workflowRunner *Runner) observeRunStart(ctx *context.Context, workflowGraph *graph.Graph, executionTrace *trace.Trace, options Options) {
	workflowRunner.observer = observerState{provider: workflowRunner.provider}
	if workflowRunner.observer.provider == nil {
		workflowRunner.observer.provider = observability.ObserverFromContext(*ctx)
	}
	if workflowRunner.observer.provider == nil {
		return
	}

	var rootSpan observability.Span
	*ctx, rootSpan = workflowRunner.observer.provider.StartSpan(*ctx, spanRunExecute,
		observability.String(attrRunID, executionTrace.RunID),
		observability.Int(attrTotalNodes, len(workflowGraph.Nodes)),
		observability.Bool(attrContinueOnError, options.ContinueOnError),
	)
	workflowRunner.observer.rootSpan = rootSpan

	*ctx = observability.ContextWithSpan(*ctx, rootSpan)
	*ctx = observability.ContextWithObserver(*ctx, workflowRunner.observer.provider)

	workflowRunner.observer.provider.Info(*ctx, "run started",
		observability.String(attrRunID, executionTrace.RunID),
		observability.Int(attrTotalNodes, len(workflowGraph.Nodes)),
		observability.Bool(attrContinueOnError, options.ContinueOnError),
	)
}

// observeRunCompleted records a run that reached the end of the execution
// order, successfully or with tolerated node failures.
func (workflowRunner *Runner) observeRunCompleted(ctx context.Context, executionTrace *trace.Trace) {
	if workflowRunner.observer.provider == nil {
		return
	}

	workflowRunner.observer.provider.Histogram(metricRunDuration).Record(ctx, executionTrace.TotalDuration.Seconds())

	status := "completed"
	if !executionTrace.Success {
		status = "completed_with_errors"
	}

	workflowRunner.observer.provider.Info(ctx, "run completed",
		observability.String(attrRunID, executionTrace.RunID),
		observability.String(observability.AttrStatus, status),
		observability.Duration(observability.AttrDuration, executionTrace.TotalDuration),
		observability.Int("run.tokens", executionTrace.TotalTokens),
		observability.Int("run.api_calls", executionTrace.TotalAPICalls),
	)

	if workflowRunner.observer.rootSpan != nil {
		workflowRunner.observer.rootSpan.SetStatus(observability.StatusOK, "run "+status)
		workflowRunner.observer.rootSpan.End()
	}
}

// observeRunFailed records a run that aborted or was stopped.
func (workflowRunner *Runner) observeRunFailed(ctx context.Context, runError error, totalDuration time.Duration) {
	if workflowRunner.observer.provider == nil {
		return
	}

	workflowRunner.observer.provider.Histogram(metricRunDuration).Record(ctx, totalDuration.Seconds())

	workflowRunner.observer.provider.Error(ctx, "run failed",
		observability.Error(runError),
		observability.Duration(observability.AttrDuration, totalDuration),
	)

	if workflowRunner.observer.rootSpan != nil {
		workflowRunner.observer.rootSpan.RecordError(runError)
		workflowRunner.observer.rootSpan.SetStatus(observability.StatusError, "run failed")
		workflowRunner.observer.rootSpan.End()
	}
}

// observeNodeStart opens a child span for a node execution and updates the
// context in place so the span reaches the block.
func (workflowRunner *Runner) observeNodeStart(ctx *context.Context, graphNode *graph.Node) {
	if workflowRunner.observer.provider == nil {
		return
	}

	var nodeSpan observability.Span
	*ctx, nodeSpan = workflowRunner.observer.provider.StartSpan(*ctx, spanNodeExecute,
		observability.String(attrNodeID, graphNode.ID),
		observability.String(attrNodeType, graphNode.Type),
	)
	*ctx = observability.ContextWithSpan(*ctx, nodeSpan)

	workflowRunner.observer.provider.Debug(*ctx, "node execution started",
		observability.String(attrNodeID, graphNode.ID),
		observability.String(attrNodeType, graphNode.Type),
	)
}

// observeNodeCompleted records a successful node and closes its span.
func (workflowRunner *Runner) observeNodeCompleted(ctx context.Context, result *trace.Result) {
	if workflowRunner.observer.provider == nil {
		return
	}

	workflowRunner.observer.provider.Histogram(metricNodeDuration).Record(ctx, result.Metadata.Duration.Seconds(),
		observability.String(attrNodeID, result.NodeID),
	)
	workflowRunner.observer.provider.Counter(metricNodeCount).Add(ctx, 1,
		observability.String(attrNodeStatus, nodeStatusCompleted),
		observability.String(attrNodeID, result.NodeID),
	)

	logAttrs := []observability.Attribute{
		observability.String(attrNodeID, result.NodeID),
		observability.String(attrNodeStatus, nodeStatusCompleted),
		observability.Duration(observability.AttrDuration, result.Metadata.Duration),
	}
	if outputString, isString := result.Output.(string); isString {
		logAttrs = append(logAttrs,
			observability.String("run.node.output", utils.TruncateString(outputString, 100)),
		)
	}
	workflowRunner.observer.provider.Info(ctx, "node execution completed", logAttrs...)

	nodeSpan := observability.SpanFromContext(ctx)
	if nodeSpan != nil {
		nodeSpan.SetAttributes(
			observability.String(attrNodeStatus, nodeStatusCompleted),
			observability.Duration(observability.AttrDuration, result.Metadata.Duration),
		)
		nodeSpan.SetStatus(observability.StatusOK, "node completed")
		nodeSpan.End()
	}
}

// observeNodeFailed records a failed node and closes its span.
func (workflowRunner *Runner) observeNodeFailed(ctx context.Context, nodeID string, nodeError error, duration time.Duration) {
	if workflowRunner.observer.provider == nil {
		return
	}

	workflowRunner.observer.provider.Histogram(metricNodeDuration).Record(ctx, duration.Seconds(),
		observability.String(attrNodeID, nodeID),
	)
	workflowRunner.observer.provider.Counter(metricNodeCount).Add(ctx, 1,
		observability.String(attrNodeStatus, nodeStatusFailed),
		observability.String(attrNodeID, nodeID),
	)

	workflowRunner.observer.provider.Error(ctx, "node execution failed",
		observability.String(attrNodeID, nodeID),
		observability.Error(nodeError),
		observability.Duration(observability.AttrDuration, duration),
	)

	nodeSpan := observability.SpanFromContext(ctx)
	if nodeSpan != nil {
		nodeSpan.RecordError(nodeError)
		nodeSpan.SetAttributes(
			observability.String(attrNodeStatus, nodeStatusFailed),
			observability.Duration(observability.AttrDuration, duration),
		)
		nodeSpan.SetStatus(observability.StatusError, "node failed")
		nodeSpan.End()
	}
}
