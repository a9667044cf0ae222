package evaluate

import (
	"fmt"

	"github.com/flowcanvas/flowcanvas/core/trace"
)

// Category classifies what a test case measures. Only functionality tests
// gate the pass/fail verdict; the others contribute to the score alone.
type Category string

const (
	CategoryFunctionality Category = "functionality"
	CategoryPerformance   Category = "performance"
	CategoryQuality       Category = "quality"
)

// Outcome is the result of one assertion over a trace: either a pass or a
// failure carrying a message.
type Outcome struct {
	Passed  bool
	Message string
}

// Pass returns a passing outcome.
func Pass() Outcome {
	return Outcome{Passed: true}
}

// Failf returns a failing outcome with a formatted message.
func Failf(format string, args ...any) Outcome {
	return Outcome{Message: fmt.Sprintf(format, args...)}
}

// Assertion inspects a finished trace and reports whether it satisfies one
// expectation. Assertions must not mutate the trace.
type Assertion func(executionTrace *trace.Trace) Outcome

// TestCase is one scored expectation within a level.
type TestCase struct {
	// ID identifies the test within the level.
	ID string `json:"id"`

	// Name is the human-readable description shown with the result.
	Name string `json:"name"`

	// Category decides whether a failure blocks passing the level.
	Category Category `json:"category"`

	// Points is the weight of this test in the score.
	Points int `json:"points"`

	// Assert is the expectation itself. Populated from the declarative
	// spec when the level comes from JSON.
	Assert Assertion `json:"-"`
}

// Budget holds the numeric ceilings a run is scored against. A zero value
// for a dimension means that dimension is unlimited.
type Budget struct {
	// Tokens is the maximum total token usage.
	Tokens int `json:"tokens,omitempty"`

	// APICalls is the maximum number of external API calls.
	APICalls int `json:"api_calls,omitempty"`

	// Seconds is the maximum wall-clock duration, in whole seconds.
	Seconds int `json:"seconds,omitempty"`
}

// StarThresholds maps final scores to a one-to-three star rating. One also
// acts as the minimum score required to pass the level.
type StarThresholds struct {
	One   int `json:"one"`
	Two   int `json:"two"`
	Three int `json:"three"`
}

// Level is the rule set a trace is evaluated against: named test cases,
// budgets, and star thresholds. Levels are content data, consumed
// read-only.
type Level struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Budget Budget         `json:"budget"`
	Stars  StarThresholds `json:"stars"`
	Tests  []TestCase     `json:"tests"`
}
