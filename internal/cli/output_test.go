package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/flowcanvas/flowcanvas/core/trace"
	"github.com/flowcanvas/flowcanvas/evaluate"
	"github.com/flowcanvas/flowcanvas/graph"
)

func TestOutput_ValidationText(testCase *testing.T) {
	var buffer bytes.Buffer
	output := NewOutput(&buffer, false)

	output.Validation(graph.Validation{Valid: false, Errors: []string{"edge e1 refers to non-existent source"}})

	rendered := buffer.String()
	if !strings.Contains(rendered, "graph is invalid (1 problem(s))") {
		testCase.Errorf("unexpected rendering: %q", rendered)
	}
	if !strings.Contains(rendered, "non-existent source") {
		testCase.Errorf("expected the problem listed, got %q", rendered)
	}
}

func TestOutput_TraceText(testCase *testing.T) {
	executionTrace := trace.New()
	executionTrace.Append(&trace.Result{
		NodeID:   "ask",
		Output:   "hi",
		Metadata: trace.Metadata{NodeType: "userInput", Duration: 5 * time.Millisecond, Tokens: 12},
	})
	executionTrace.Append(&trace.Result{
		NodeID:   "broken",
		Metadata: trace.Metadata{NodeType: "llmParse", Error: "execution timeout"},
	})
	executionTrace.TotalDuration = 10 * time.Millisecond

	var buffer bytes.Buffer
	NewOutput(&buffer, false).Trace(executionTrace)

	rendered := buffer.String()
	if !strings.Contains(rendered, "[ok ] ask (userInput)") {
		testCase.Errorf("expected successful node line, got %q", rendered)
	}
	if !strings.Contains(rendered, "[ERR] broken (llmParse)") || !strings.Contains(rendered, "execution timeout") {
		testCase.Errorf("expected failed node line with reason, got %q", rendered)
	}
	if !strings.Contains(rendered, "totals: 12 tokens") {
		testCase.Errorf("expected usage totals, got %q", rendered)
	}
}

func TestOutput_TraceJSON(testCase *testing.T) {
	executionTrace := trace.New()
	executionTrace.Success = true

	var buffer bytes.Buffer
	NewOutput(&buffer, true).Trace(executionTrace)

	rendered := buffer.String()
	if !strings.Contains(rendered, `"run_id"`) || !strings.Contains(rendered, `"success": true`) {
		testCase.Errorf("expected JSON trace, got %q", rendered)
	}
}

func TestOutput_EvaluationText(testCase *testing.T) {
	evaluation := &evaluate.EvaluationResult{
		Score:              80,
		Stars:              2,
		Passed:             true,
		PointsEarned:       15,
		PointsPossible:     20,
		ObservabilityScore: 90,
		Tests: []evaluate.TestResult{
			{ID: "t1", Name: "runs cleanly", Category: evaluate.CategoryFunctionality, Points: 10, Passed: true},
			{ID: "t2", Name: "stays cheap", Category: evaluate.CategoryPerformance, Points: 10, Passed: false, Message: "used 900 tokens", NodeID: "parse"},
		},
		Budgets: evaluate.BudgetReport{
			Tokens: evaluate.BudgetStatus{Current: 900, Limit: 500, Exceeded: true},
		},
	}

	var buffer bytes.Buffer
	NewOutput(&buffer, false).Evaluation(evaluation)

	rendered := buffer.String()
	if !strings.Contains(rendered, "PASSED - score 80/100 (**)") {
		testCase.Errorf("expected verdict line, got %q", rendered)
	}
	if !strings.Contains(rendered, "[fail] stays cheap") || !strings.Contains(rendered, "[node parse]") {
		testCase.Errorf("expected failing test with attribution, got %q", rendered)
	}
	if !strings.Contains(rendered, "budget tokens: 900 / 500 (EXCEEDED)") {
		testCase.Errorf("expected exceeded budget line, got %q", rendered)
	}
}
