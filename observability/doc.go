// Package observability defines the engine's pluggable instrumentation
// surface: structured logging, counters and histograms, and lightweight
// spans. The runner emits events through a [Provider]; a nil provider
// disables instrumentation with zero overhead.
//
// The default implementation is [github.com/flowcanvas/flowcanvas/observability/slogobs],
// which renders everything through the standard library's log/slog.
package observability
