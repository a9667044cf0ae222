package evaluate

import (
	"reflect"
	"strings"

	"github.com/flowcanvas/flowcanvas/core/trace"
	"github.com/flowcanvas/flowcanvas/internal/utils"
)

// AssertionFactory exposes the built-in assertions level content is written
// against. Obtain one via [Assertions].
type AssertionFactory struct{}

// Assertions returns the factory for the built-in assertion set.
func Assertions() AssertionFactory {
	return AssertionFactory{}
}

// finalOutput returns the last executed node's output rendered as a string,
// or false when the trace is empty.
func finalOutput(executionTrace *trace.Trace) (string, bool) {
	lastResult := executionTrace.Last()
	if lastResult == nil {
		return "", false
	}
	return utils.ToString(lastResult.Output), true
}

// OutputContains passes when the final node's output, rendered as a string,
// contains the given substring.
func (AssertionFactory) OutputContains(substring string) Assertion {
	return func(executionTrace *trace.Trace) Outcome {
		output, hasOutput := finalOutput(executionTrace)
		if !hasOutput {
			return Failf("no output: trace is empty")
		}
		if !strings.Contains(output, substring) {
			return Failf("output does not contain %q", substring)
		}
		return Pass()
	}
}

// OutputEquals passes when the final node's output deep-equals the expected
// value.
func (AssertionFactory) OutputEquals(expected any) Assertion {
	return func(executionTrace *trace.Trace) Outcome {
		lastResult := executionTrace.Last()
		if lastResult == nil {
			return Failf("no output: trace is empty")
		}
		if !reflect.DeepEqual(lastResult.Output, expected) {
			return Failf("output %s does not equal expected %s",
				utils.ToString(lastResult.Output), utils.ToString(expected))
		}
		return Pass()
	}
}

// ExecutionSucceeded passes when the run completed with every node clean.
func (AssertionFactory) ExecutionSucceeded() Assertion {
	return func(executionTrace *trace.Trace) Outcome {
		if !executionTrace.Success {
			if executionTrace.Error != "" {
				return Failf("execution failed: %s", executionTrace.Error)
			}
			return Failf("execution failed")
		}
		return Pass()
	}
}

// UsesBlockType passes when any executed node was dispatched on the given
// block type.
func (AssertionFactory) UsesBlockType(blockType string) Assertion {
	return func(executionTrace *trace.Trace) Outcome {
		for _, result := range executionTrace.Results {
			if strings.EqualFold(result.Metadata.NodeType, blockType) {
				return Pass()
			}
		}
		return Failf("no node of type %q was executed", blockType)
	}
}

// TokenUsageUnder passes when total token usage stayed strictly under the
// limit.
func (AssertionFactory) TokenUsageUnder(limit int) Assertion {
	return func(executionTrace *trace.Trace) Outcome {
		if executionTrace.TotalTokens >= limit {
			return Failf("used %d tokens, limit is %d", executionTrace.TotalTokens, limit)
		}
		return Pass()
	}
}
