package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/flowcanvas/flowcanvas/core/trace"
	"github.com/flowcanvas/flowcanvas/evaluate"
	"github.com/flowcanvas/flowcanvas/graph"
	"github.com/flowcanvas/flowcanvas/internal/utils"
)

// Output renders command results either as human-readable text or as JSON.
type Output struct {
	writer     io.Writer
	jsonOutput bool
}

// NewOutput creates an Output writing to the given writer.
func NewOutput(writer io.Writer, jsonOutput bool) *Output {
	return &Output{writer: writer, jsonOutput: jsonOutput}
}

// Validation renders a graph validation report.
func (output *Output) Validation(validation graph.Validation) {
	if output.jsonOutput {
		fmt.Fprintln(output.writer, utils.JSONToString(validation, true))
		return
	}

	if validation.Valid {
		fmt.Fprintln(output.writer, "graph is valid")
		return
	}

	fmt.Fprintf(output.writer, "graph is invalid (%d problem(s)):\n", len(validation.Errors))
	for _, message := range validation.Errors {
		fmt.Fprintf(output.writer, "  - %s\n", message)
	}
}

// Trace renders an execution trace summary.
func (output *Output) Trace(executionTrace *trace.Trace) {
	if output.jsonOutput {
		fmt.Fprintln(output.writer, utils.JSONToString(executionTrace, true))
		return
	}

	status := "completed"
	if !executionTrace.Success {
		status = "failed"
		if executionTrace.Error != "" {
			status = "failed: " + executionTrace.Error
		}
	}
	fmt.Fprintf(output.writer, "run %s %s in %s\n", executionTrace.RunID, status, executionTrace.TotalDuration)

	for _, result := range executionTrace.Results {
		marker := "ok "
		detail := ""
		if result.Failed() {
			marker = "ERR"
			detail = " - " + result.Metadata.Error
		}
		fmt.Fprintf(output.writer, "  [%s] %s (%s) %s%s\n",
			marker, result.NodeID, result.Metadata.NodeType, result.Metadata.Duration, detail)
	}

	fmt.Fprintf(output.writer, "totals: %d tokens, %d API calls\n",
		executionTrace.TotalTokens, executionTrace.TotalAPICalls)
}

// Evaluation renders a level evaluation verdict.
func (output *Output) Evaluation(evaluation *evaluate.EvaluationResult) {
	if output.jsonOutput {
		fmt.Fprintln(output.writer, utils.JSONToString(evaluation, true))
		return
	}

	verdict := "FAILED"
	if evaluation.Passed {
		verdict = "PASSED"
	}
	fmt.Fprintf(output.writer, "%s - score %d/100 (%s), %d/%d points, observability %d\n",
		verdict, evaluation.Score, strings.Repeat("*", evaluation.Stars),
		evaluation.PointsEarned, evaluation.PointsPossible, evaluation.ObservabilityScore)

	for _, testResult := range evaluation.Tests {
		marker := "pass"
		if !testResult.Passed {
			marker = "fail"
		}
		line := fmt.Sprintf("  [%s] %s (%s, %d pts)", marker, testResult.Name, testResult.Category, testResult.Points)
		if testResult.Message != "" {
			line += ": " + testResult.Message
		}
		if testResult.NodeID != "" {
			line += fmt.Sprintf(" [node %s]", testResult.NodeID)
		}
		fmt.Fprintln(output.writer, line)
	}

	printBudget := func(name string, status evaluate.BudgetStatus) {
		if status.Limit == 0 {
			return
		}
		state := "within"
		if status.Exceeded {
			state = "EXCEEDED"
		}
		fmt.Fprintf(output.writer, "  budget %s: %d / %d (%s)\n", name, status.Current, status.Limit, state)
	}
	printBudget("tokens", evaluation.Budgets.Tokens)
	printBudget("api calls", evaluation.Budgets.APICalls)
	printBudget("seconds", evaluation.Budgets.Seconds)
}

// Progress renders a live per-node progress line.
func (output *Output) Progress(nodeID string, percent float64) {
	if output.jsonOutput {
		return
	}
	fmt.Fprintf(output.writer, "  .. %s (%.0f%%)\n", nodeID, percent)
}
