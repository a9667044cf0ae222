package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// As parses a string into the target type T.
//
// Primitive targets (string, bool, int, uint, float) are converted directly
// with strconv. Complex targets (structs, maps, slices) are JSON-unmarshaled;
// when strict unmarshaling fails the content is repaired with jsonrepair and
// decoded once more.
//
// Example:
//
//	type Intent struct {
//	    Intent string `json:"intent"`
//	}
//
//	intent, err := parse.As[Intent](`{intent: 'schedule'}`) // repaired
func As[T any](content string) (T, error) {
	var result T
	content = StripFences(content)

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		reflect.ValueOf(&result).Elem().SetString(content)
		return result, nil

	case reflect.Bool:
		parsed, err := strconv.ParseBool(strings.TrimSpace(content))
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetBool(parsed)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(strings.TrimSpace(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetInt(parsed)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(strings.TrimSpace(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetUint(parsed)
		return result, nil

	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetFloat(parsed)
		return result, nil

	default:
		if err := json.Unmarshal([]byte(content), &result); err == nil {
			return result, nil
		}

		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("failed to repair content as JSON: %w", repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &result); err != nil {
			return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
		}
		return result, nil
	}
}

// Object parses a string into a generic JSON object, applying the same
// repair fallback as [As].
func Object(content string) (map[string]any, error) {
	return As[map[string]any](content)
}

// StripFences removes a surrounding markdown code fence (``` or ```json)
// from content if present, returning the inner text trimmed of whitespace.
func StripFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop an optional language tag on the opening fence line.
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(trimmed[:newline])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[\"") {
			trimmed = trimmed[newline+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
