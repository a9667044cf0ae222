// Package userinput provides the source block that injects user-authored
// text into a workflow. It has no upstream inputs; its output is whatever
// the canvas parameter editor stored under the "value" param.
package userinput

import (
	"context"

	"github.com/flowcanvas/flowcanvas/blocks"
	"github.com/flowcanvas/flowcanvas/core/trace"
)

// Type is the registry key for this block.
const Type = "userInput"

// New returns the userInput block.
func New() blocks.Block {
	return blocks.BlockFunc(execute)
}

func execute(_ context.Context, executionContext *blocks.ExecutionContext) (*trace.Result, error) {
	value := executionContext.Param("value", "")
	return &trace.Result{
		Output: value,
		Metadata: trace.Metadata{
			Extra: map[string]any{"length": len(value)},
		},
	}, nil
}
