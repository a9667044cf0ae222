package blocks

import (
	"context"
	"time"

	"github.com/flowcanvas/flowcanvas/core/trace"
	"github.com/flowcanvas/flowcanvas/graph"
)

// ExecutionContext is everything a block receives when its node executes.
type ExecutionContext struct {
	// NodeID identifies the node being executed.
	NodeID string

	// NodeType is the block-type key the node was dispatched on.
	NodeType string

	// Label is the node's display label.
	Label string

	// Input is the fan-in value assembled from upstream outputs: nil for
	// source nodes, the single producer's output for one inbound edge, or a
	// map keyed by target handle for several.
	Input any

	// Timestamp is the instant the node started executing.
	Timestamp time.Time

	// Position is the node's canvas coordinate, passed through for blocks
	// that want to report it in metadata.
	Position graph.Position

	// Params contains the node's user-configured parameters.
	Params map[string]any
}

// Param returns the named parameter as a string, or fallback when the
// parameter is missing or not a string.
func (executionContext *ExecutionContext) Param(name, fallback string) string {
	if value, isString := executionContext.Params[name].(string); isString {
		return value
	}
	return fallback
}

// Block is the interface every executable node implementation satisfies.
//
// Implementations should honor ctx cancellation, return a [trace.Result]
// with Output and any usage metadata populated on success, and return an
// error on failure. The runner stamps NodeID, Input, Timestamp, Duration,
// and NodeType onto the result; blocks only fill in what they know.
type Block interface {
	Execute(ctx context.Context, executionContext *ExecutionContext) (*trace.Result, error)
}

// BlockFunc is an adapter that allows using an ordinary function as a Block.
type BlockFunc func(ctx context.Context, executionContext *ExecutionContext) (*trace.Result, error)

// Execute calls the underlying function, satisfying the Block interface.
func (blockFunc BlockFunc) Execute(ctx context.Context, executionContext *ExecutionContext) (*trace.Result, error) {
	return blockFunc(ctx, executionContext)
}
