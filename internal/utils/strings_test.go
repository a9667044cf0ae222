package utils

import (
	"strings"
	"testing"
)

func TestJSONToString_Compact(testCase *testing.T) {
	result := JSONToString(map[string]any{"intent": "remind"})
	if result != `{"intent":"remind"}` {
		testCase.Errorf("expected compact JSON, got %q", result)
	}
}

func TestJSONToString_Indented(testCase *testing.T) {
	result := JSONToString(map[string]any{"a": 1}, true)
	if !strings.Contains(result, "\n  \"a\": 1") {
		testCase.Errorf("expected indented JSON, got %q", result)
	}
}

func TestJSONToString_UnmarshalableValue(testCase *testing.T) {
	result := JSONToString(func() {})
	if !strings.Contains(result, "failed to marshal") {
		testCase.Errorf("expected marshal error string, got %q", result)
	}
}

func TestTruncateString(testCase *testing.T) {
	short := TruncateString("hello", 10)
	if short != "hello" {
		testCase.Errorf("expected short string unchanged, got %q", short)
	}

	long := TruncateString(strings.Repeat("x", 40), 10)
	if !strings.HasPrefix(long, "xxxxxxxxxx...") {
		testCase.Errorf("expected truncated prefix, got %q", long)
	}
	if !strings.Contains(long, "total: 40 chars") {
		testCase.Errorf("expected total length in suffix, got %q", long)
	}
}

func TestTruncateString_NonPositiveMaxUsesDefault(testCase *testing.T) {
	input := strings.Repeat("y", DefaultMaxStringLength+5)
	result := TruncateString(input, 0)
	if len(result) >= len(input) {
		testCase.Errorf("expected truncation at default length, got len %d", len(result))
	}
}
