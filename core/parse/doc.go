// Package parse converts loosely formatted block output strings into typed
// Go values. Simulated LLM blocks frequently emit almost-JSON — single
// quotes, trailing commas, markdown code fences — so strict decoding is tried
// first and, on failure, the content is repaired with the jsonrepair library
// and decoded again before giving up with a clear error.
//
// The main entry points are the generic [As] for typed results and [Object]
// for the common map[string]any case used by block outputs.
package parse
