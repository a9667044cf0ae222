package llmparse

import (
	"context"
	"testing"

	"github.com/flowcanvas/flowcanvas/blocks"
)

func TestExecute_GuessesIntentFromInput(testCase *testing.T) {
	block := New()

	result, err := block.Execute(context.Background(), &blocks.ExecutionContext{
		NodeID: "parse-1",
		Input:  "please schedule a meeting for tomorrow",
	})
	if err != nil {
		testCase.Fatalf("execute error: %v", err)
	}

	output, isMap := result.Output.(map[string]any)
	if !isMap {
		testCase.Fatalf("expected map output, got %T", result.Output)
	}
	if output["intent"] != "schedule_meeting" {
		testCase.Errorf("expected intent 'schedule_meeting', got %v", output["intent"])
	}
	if result.Metadata.APICalls != 1 {
		testCase.Errorf("expected 1 API call, got %d", result.Metadata.APICalls)
	}
	if result.Metadata.Tokens <= baseTokens {
		testCase.Errorf("expected tokens above base for non-empty input, got %d", result.Metadata.Tokens)
	}
}

func TestExecute_IntentOverrideParam(testCase *testing.T) {
	block := New()

	result, err := block.Execute(context.Background(), &blocks.ExecutionContext{
		Input:  "anything at all",
		Params: map[string]any{"intent": "custom_intent"},
	})
	if err != nil {
		testCase.Fatalf("execute error: %v", err)
	}

	output := result.Output.(map[string]any)
	if output["intent"] != "custom_intent" {
		testCase.Errorf("expected overridden intent, got %v", output["intent"])
	}
}

func TestExecute_ScriptedResponseIsRepaired(testCase *testing.T) {
	block := New()

	// Single-quoted pseudo-JSON, as level content often ships it.
	result, err := block.Execute(context.Background(), &blocks.ExecutionContext{
		Input:  "schedule something",
		Params: map[string]any{"response": `{intent: 'schedule_meeting', when: 'tomorrow'}`},
	})
	if err != nil {
		testCase.Fatalf("execute error: %v", err)
	}

	output := result.Output.(map[string]any)
	if output["intent"] != "schedule_meeting" {
		testCase.Errorf("expected repaired intent, got %v", output["intent"])
	}
	if output["when"] != "tomorrow" {
		testCase.Errorf("expected repaired 'when' field, got %v", output["when"])
	}
}

func TestExecute_MapInputIsFlattened(testCase *testing.T) {
	block := New()

	result, err := block.Execute(context.Background(), &blocks.ExecutionContext{
		Input: map[string]any{"a": "remind me later", "b": 2},
	})
	if err != nil {
		testCase.Fatalf("execute error: %v", err)
	}

	output := result.Output.(map[string]any)
	if output["intent"] != "set_reminder" {
		testCase.Errorf("expected intent from flattened map input, got %v", output["intent"])
	}
}

func TestExecute_CanceledContext(testCase *testing.T) {
	block := New()
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := block.Execute(canceled, &blocks.ExecutionContext{Input: "x"})
	if err == nil {
		testCase.Fatal("expected error for canceled context")
	}
}
