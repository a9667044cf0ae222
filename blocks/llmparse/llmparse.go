// Package llmparse provides the simulated LLM intent-extraction block.
//
// The block does not call a real model. It either repairs and decodes the
// JSON-ish "response" parameter authored with the level content, or
// synthesizes an intent object from its input text. Usage metadata (tokens,
// API calls) is estimated deterministically so budget scoring stays stable
// across runs.
package llmparse

import (
	"context"
	"strings"

	"github.com/flowcanvas/flowcanvas/blocks"
	"github.com/flowcanvas/flowcanvas/core/parse"
	"github.com/flowcanvas/flowcanvas/core/trace"
	"github.com/flowcanvas/flowcanvas/internal/utils"
)

// Type is the registry key for this block.
const Type = "llmParse"

// baseTokens approximates the prompt overhead of a parse call.
const baseTokens = 20

// New returns the llmParse block.
func New() blocks.Block {
	return blocks.BlockFunc(execute)
}

func execute(ctx context.Context, executionContext *blocks.ExecutionContext) (*trace.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputText := inputAsString(executionContext.Input)

	// Content authors can script the "model response" per node; it is often
	// sloppy JSON on purpose, so it goes through the repair pipeline.
	var output map[string]any
	if scripted := executionContext.Param("response", ""); scripted != "" {
		parsed, err := parse.Object(scripted)
		if err != nil {
			return nil, err
		}
		output = parsed
	} else {
		output = map[string]any{
			"intent": guessIntent(inputText, executionContext.Param("intent", "")),
			"text":   inputText,
		}
	}

	return &trace.Result{
		Output: output,
		Metadata: trace.Metadata{
			Tokens:   baseTokens + len(inputText)/4,
			APICalls: 1,
			Extra:    map[string]any{"model": "simulated"},
		},
	}, nil
}

// inputAsString flattens the fan-in value to text: strings pass through,
// anything else is rendered as compact JSON.
func inputAsString(input any) string {
	if input == nil {
		return ""
	}
	if text, isString := input.(string); isString {
		return text
	}
	return utils.ToString(input)
}

// guessIntent picks a simulated intent: an explicit override param wins,
// otherwise a keyword scan over the input text.
func guessIntent(inputText, override string) string {
	if override != "" {
		return override
	}

	lowered := strings.ToLower(inputText)
	switch {
	case strings.Contains(lowered, "schedule"), strings.Contains(lowered, "meeting"):
		return "schedule_meeting"
	case strings.Contains(lowered, "remind"):
		return "set_reminder"
	case strings.Contains(lowered, "weather"):
		return "get_weather"
	default:
		return "unknown"
	}
}
