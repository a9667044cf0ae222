package evaluate

import (
	"math"
	"time"

	"github.com/flowcanvas/flowcanvas/core/trace"
)

// TestResult is the scored outcome of one test case.
type TestResult struct {
	// ID, Name, Category, and Points mirror the test case.
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Points   int      `json:"points"`

	// Passed reports whether the assertion held.
	Passed bool `json:"passed"`

	// Message explains a failure. Empty on pass.
	Message string `json:"message,omitempty"`

	// NodeID attributes a failure to a node: the first result carrying an
	// application error, or the last executed node when none does. Empty
	// on pass and for empty traces.
	NodeID string `json:"node_id,omitempty"`
}

// BudgetStatus compares one budget dimension against its ceiling.
type BudgetStatus struct {
	// Current is the run's consumption of this dimension.
	Current int `json:"current"`

	// Limit is the level's ceiling. Zero means unlimited.
	Limit int `json:"limit"`

	// Exceeded is true when Current is strictly above a non-zero Limit.
	Exceeded bool `json:"exceeded"`
}

// BudgetReport covers all three budget dimensions.
type BudgetReport struct {
	Tokens   BudgetStatus `json:"tokens"`
	APICalls BudgetStatus `json:"api_calls"`
	Seconds  BudgetStatus `json:"seconds"`
}

// EvaluationResult is the complete verdict for one trace against one level.
type EvaluationResult struct {
	// Score is the final 0-100 score.
	Score int `json:"score"`

	// Stars is the 0-3 rating derived from the level's thresholds.
	Stars int `json:"stars"`

	// Passed is true when every functionality test passed and Score meets
	// the one-star threshold.
	Passed bool `json:"passed"`

	// Tests holds one result per test case, in level order.
	Tests []TestResult `json:"tests"`

	// Budgets reports each budget dimension.
	Budgets BudgetReport `json:"budgets"`

	// ObservabilityScore is the 0-100 execution-cleanliness sub-score.
	ObservabilityScore int `json:"observability_score"`

	// PointsEarned and PointsPossible summarize the test component.
	PointsEarned   int `json:"points_earned"`
	PointsPossible int `json:"points_possible"`
}

// Evaluate scores a finished trace against a level.
//
// Each test's assertion runs over the trace with panics recovered into
// failing outcomes, so one broken assertion cannot abort scoring of the
// rest. The final score combines the point-weighted test pass ratio (70%),
// the observability sub-score (30%), and a 10-point penalty per exceeded
// budget, clamped to [0, 100]. A level with no scorable points grants the
// test component in full.
func Evaluate(executionTrace *trace.Trace, level *Level) *EvaluationResult {
	evaluation := &EvaluationResult{
		Tests:              make([]TestResult, 0, len(level.Tests)),
		Budgets:            checkBudgets(executionTrace, level.Budget),
		ObservabilityScore: observabilityScore(executionTrace),
	}

	attributedNodeID := failureNodeID(executionTrace)
	functionalityPassed := true

	for _, testCase := range level.Tests {
		outcome := runAssertion(testCase.Assert, executionTrace)

		testResult := TestResult{
			ID:       testCase.ID,
			Name:     testCase.Name,
			Category: testCase.Category,
			Points:   testCase.Points,
			Passed:   outcome.Passed,
		}

		evaluation.PointsPossible += testCase.Points
		if outcome.Passed {
			evaluation.PointsEarned += testCase.Points
		} else {
			testResult.Message = outcome.Message
			testResult.NodeID = attributedNodeID
			if testCase.Category == CategoryFunctionality {
				functionalityPassed = false
			}
		}

		evaluation.Tests = append(evaluation.Tests, testResult)
	}

	// Test component: point-weighted pass ratio at 70% weight. A level
	// without scorable points passes this component vacuously.
	testComponent := 70.0
	if evaluation.PointsPossible > 0 {
		testComponent = float64(evaluation.PointsEarned) / float64(evaluation.PointsPossible) * 70
	}

	exceededCount := 0
	for _, status := range []BudgetStatus{evaluation.Budgets.Tokens, evaluation.Budgets.APICalls, evaluation.Budgets.Seconds} {
		if status.Exceeded {
			exceededCount++
		}
	}

	rawScore := testComponent + float64(evaluation.ObservabilityScore)/100*30 - 10*float64(exceededCount)
	evaluation.Score = int(math.Round(math.Min(100, math.Max(0, rawScore))))
	evaluation.Stars = starsFor(evaluation.Score, level.Stars)
	evaluation.Passed = functionalityPassed && evaluation.Score >= level.Stars.One

	return evaluation
}

// runAssertion executes one assertion, converting a panic into a failing
// outcome.
func runAssertion(assert Assertion, executionTrace *trace.Trace) (outcome Outcome) {
	defer func() {
		if recovered := recover(); recovered != nil {
			outcome = Failf("assertion panicked: %v", recovered)
		}
	}()
	if assert == nil {
		return Failf("test has no assertion")
	}
	return assert(executionTrace)
}

// failureNodeID picks the node a test failure is attributed to: the first
// result carrying an application error, else the last executed node.
func failureNodeID(executionTrace *trace.Trace) string {
	for _, result := range executionTrace.Results {
		if result.Failed() {
			return result.NodeID
		}
	}
	if lastResult := executionTrace.Last(); lastResult != nil {
		return lastResult.NodeID
	}
	return ""
}

// checkBudgets compares the trace totals against the level's ceilings.
// Wall-clock time is rounded up to whole seconds before comparison.
func checkBudgets(executionTrace *trace.Trace, budget Budget) BudgetReport {
	elapsedSeconds := int(math.Ceil(executionTrace.TotalDuration.Seconds()))

	return BudgetReport{
		Tokens:   budgetStatus(executionTrace.TotalTokens, budget.Tokens),
		APICalls: budgetStatus(executionTrace.TotalAPICalls, budget.APICalls),
		Seconds:  budgetStatus(elapsedSeconds, budget.Seconds),
	}
}

func budgetStatus(current, limit int) BudgetStatus {
	return BudgetStatus{
		Current:  current,
		Limit:    limit,
		Exceeded: limit > 0 && current > limit,
	}
}

// observabilityScore rates how cleanly the run executed, 0-100:
// +30 for overall success, up to +20 scaled down by the fraction of
// results carrying errors, +20 for a mean node duration under a second
// (+10 under three), and up to +30 proportional to the fraction of results
// with a non-nil input, a proxy for properly connected nodes.
func observabilityScore(executionTrace *trace.Trace) int {
	score := 0
	if executionTrace.Success {
		score += 30
	}

	totalResults := len(executionTrace.Results)
	if totalResults == 0 {
		return score
	}

	errorRatio := float64(executionTrace.ErrorCount()) / float64(totalResults)
	score += int(math.Round(20 * (1 - errorRatio)))

	var totalNodeDuration time.Duration
	connectedResults := 0
	for _, result := range executionTrace.Results {
		totalNodeDuration += result.Metadata.Duration
		if result.Input != nil {
			connectedResults++
		}
	}

	meanNodeDuration := totalNodeDuration / time.Duration(totalResults)
	switch {
	case meanNodeDuration < time.Second:
		score += 20
	case meanNodeDuration < 3*time.Second:
		score += 10
	}

	connectedRatio := float64(connectedResults) / float64(totalResults)
	score += int(math.Round(30 * connectedRatio))

	return score
}

// starsFor maps a final score to a 0-3 star rating.
func starsFor(score int, thresholds StarThresholds) int {
	switch {
	case thresholds.Three > 0 && score >= thresholds.Three:
		return 3
	case thresholds.Two > 0 && score >= thresholds.Two:
		return 2
	case thresholds.One > 0 && score >= thresholds.One:
		return 1
	}
	return 0
}
