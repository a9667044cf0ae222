package evaluate

import (
	"encoding/json"
	"fmt"
)

// assertionSpec is the declarative form an assertion takes in level JSON.
// It compiles to one of the [Assertions] factories, so level content stays
// pure data.
type assertionSpec struct {
	// Kind names the factory: outputContains, outputEquals,
	// executionSucceeded, usesBlockType, or tokenUsageUnder.
	Kind string `json:"kind"`

	// Value is the factory argument, where the kind takes one.
	Value any `json:"value,omitempty"`
}

// testCaseSpec is the JSON form of a test case.
type testCaseSpec struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category Category      `json:"category"`
	Points   int           `json:"points"`
	Assert   assertionSpec `json:"assert"`
}

// levelDocument is the JSON form of a level.
type levelDocument struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Budget Budget         `json:"budget"`
	Stars  StarThresholds `json:"stars"`
	Tests  []testCaseSpec `json:"tests"`
}

// ParseLevel decodes a level from its JSON representation, compiling each
// declarative assertion spec into an executable assertion.
func ParseLevel(data []byte) (*Level, error) {
	var document levelDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse level JSON: %w", err)
	}

	level := &Level{
		ID:     document.ID,
		Name:   document.Name,
		Budget: document.Budget,
		Stars:  document.Stars,
		Tests:  make([]TestCase, 0, len(document.Tests)),
	}

	for _, testSpec := range document.Tests {
		assertion, err := compileAssertion(testSpec.Assert)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", testSpec.ID, err)
		}
		level.Tests = append(level.Tests, TestCase{
			ID:       testSpec.ID,
			Name:     testSpec.Name,
			Category: testSpec.Category,
			Points:   testSpec.Points,
			Assert:   assertion,
		})
	}

	return level, nil
}

// compileAssertion resolves a declarative spec to its factory-built
// assertion.
func compileAssertion(spec assertionSpec) (Assertion, error) {
	factory := Assertions()

	switch spec.Kind {
	case "outputContains":
		substring, isString := spec.Value.(string)
		if !isString {
			return nil, fmt.Errorf("outputContains requires a string value, got %T", spec.Value)
		}
		return factory.OutputContains(substring), nil

	case "outputEquals":
		return factory.OutputEquals(spec.Value), nil

	case "executionSucceeded":
		return factory.ExecutionSucceeded(), nil

	case "usesBlockType":
		blockType, isString := spec.Value.(string)
		if !isString {
			return nil, fmt.Errorf("usesBlockType requires a string value, got %T", spec.Value)
		}
		return factory.UsesBlockType(blockType), nil

	case "tokenUsageUnder":
		limit, isNumber := spec.Value.(float64)
		if !isNumber {
			return nil, fmt.Errorf("tokenUsageUnder requires a numeric value, got %T", spec.Value)
		}
		return factory.TokenUsageUnder(int(limit)), nil
	}

	return nil, fmt.Errorf("unknown assertion kind %q", spec.Kind)
}
