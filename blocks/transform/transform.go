// Package transform provides the block that reshapes its fan-in input with a
// Go text/template. The template receives the raw input and the node params,
// which covers the common canvas cases: wrapping a value in prose, picking a
// field out of a fan-in map, or joining multiple upstream outputs.
package transform

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/flowcanvas/flowcanvas/blocks"
	"github.com/flowcanvas/flowcanvas/core/trace"
)

// Type is the registry key for this block.
const Type = "transform"

// New returns the transform block.
func New() blocks.Block {
	return blocks.BlockFunc(execute)
}

func execute(_ context.Context, executionContext *blocks.ExecutionContext) (*trace.Result, error) {
	templateText := executionContext.Param("template", "{{.Input}}")

	parsed, err := template.New(executionContext.NodeID).Option("missingkey=zero").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transform template: %w", err)
	}

	data := struct {
		Input  any
		Params map[string]any
	}{
		Input:  executionContext.Input,
		Params: executionContext.Params,
	}

	var rendered strings.Builder
	if err := parsed.Execute(&rendered, data); err != nil {
		return nil, fmt.Errorf("failed to render transform template: %w", err)
	}

	return &trace.Result{
		Output: rendered.String(),
		Metadata: trace.Metadata{
			Extra: map[string]any{"template": templateText},
		},
	}, nil
}
