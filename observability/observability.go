package observability

import (
	"context"
	"time"
)

// Provider is the main interface for observability (tracing, metrics, logging).
type Provider interface {
	Tracer
	Metrics
	Logger
}

// Tracer provides span-based tracing capabilities.
type Tracer interface {
	// StartSpan starts a new span.
	StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Span represents a single unit of work.
type Span interface {
	// End completes the span.
	End()
	// SetAttributes adds attributes to the span.
	SetAttributes(attrs ...Attribute)
	// SetStatus sets the span status.
	SetStatus(code StatusCode, description string)
	// RecordError records an error on the span.
	RecordError(err error)
}

// StatusCode represents the status of a span.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// Metrics provides metrics collection capabilities.
type Metrics interface {
	// Counter creates or retrieves a counter metric.
	Counter(name string) Counter
	// Histogram creates or retrieves a histogram metric.
	Histogram(name string) Histogram
}

// Counter is a monotonically increasing metric.
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attribute)
}

// Histogram records a distribution of values.
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// Logger provides structured logging capabilities.
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// Attribute represents a key-value pair of event metadata.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Float64 creates a float64 attribute.
func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value}
}

// Error creates an error attribute from err's message.
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: "error", Value: ""}
	}
	return Attribute{Key: "error", Value: err.Error()}
}

// Shared attribute names used across the engine.
const (
	// AttrStatus is the terminal status of a span or run.
	AttrStatus = "status"

	// AttrStatusDescription carries a human-readable status detail.
	AttrStatusDescription = "status.description"

	// AttrDuration is the wall-clock duration of an operation.
	AttrDuration = "duration"
)
