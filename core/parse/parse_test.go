package parse

import (
	"strings"
	"testing"
)

func TestAs_String(testCase *testing.T) {
	result, err := As[string]("hello world")
	if err != nil {
		testCase.Fatalf("parse error: %v", err)
	}
	if result != "hello world" {
		testCase.Errorf("expected 'hello world', got %q", result)
	}
}

func TestAs_Primitives(testCase *testing.T) {
	boolResult, err := As[bool]("true")
	if err != nil || !boolResult {
		testCase.Errorf("expected true, got %v (err: %v)", boolResult, err)
	}

	intResult, err := As[int]("42")
	if err != nil || intResult != 42 {
		testCase.Errorf("expected 42, got %d (err: %v)", intResult, err)
	}

	floatResult, err := As[float64]("3.5")
	if err != nil || floatResult != 3.5 {
		testCase.Errorf("expected 3.5, got %v (err: %v)", floatResult, err)
	}
}

func TestAs_PrimitiveError(testCase *testing.T) {
	_, err := As[int]("not a number")
	if err == nil {
		testCase.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse content as int") {
		testCase.Errorf("expected int parse error, got: %v", err)
	}
}

func TestAs_StrictJSON(testCase *testing.T) {
	type Intent struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}

	result, err := As[Intent](`{"intent":"schedule_meeting","confidence":0.92}`)
	if err != nil {
		testCase.Fatalf("parse error: %v", err)
	}
	if result.Intent != "schedule_meeting" {
		testCase.Errorf("expected intent 'schedule_meeting', got %q", result.Intent)
	}
	if result.Confidence != 0.92 {
		testCase.Errorf("expected confidence 0.92, got %v", result.Confidence)
	}
}

func TestAs_RepairedJSON(testCase *testing.T) {
	type Intent struct {
		Intent string `json:"intent"`
	}

	// Single quotes and unquoted key: invalid JSON that jsonrepair can fix.
	result, err := As[Intent](`{intent: 'schedule_meeting'}`)
	if err != nil {
		testCase.Fatalf("expected repair to succeed, got: %v", err)
	}
	if result.Intent != "schedule_meeting" {
		testCase.Errorf("expected repaired intent, got %q", result.Intent)
	}
}

func TestObject_CodeFence(testCase *testing.T) {
	content := "```json\n{\"intent\": \"remind\", \"slots\": {\"when\": \"tomorrow\"}}\n```"

	object, err := Object(content)
	if err != nil {
		testCase.Fatalf("parse error: %v", err)
	}
	if object["intent"] != "remind" {
		testCase.Errorf("expected intent 'remind', got %v", object["intent"])
	}
	slots, isMap := object["slots"].(map[string]any)
	if !isMap || slots["when"] != "tomorrow" {
		testCase.Errorf("expected nested slots map, got %v", object["slots"])
	}
}

func TestStripFences(testCase *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}

	for _, current := range cases {
		testCase.Run(current.name, func(subTest *testing.T) {
			if got := StripFences(current.input); got != current.expected {
				subTest.Errorf("expected %q, got %q", current.expected, got)
			}
		})
	}
}
