// Package slogobs implements observability.Provider on top of the standard
// library's log/slog. Spans are rendered as start/end log entries with
// durations, counters and histograms as metric log entries with running
// values. It is the default instrumentation backend for the engine.
package slogobs

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/flowcanvas/flowcanvas/observability"
)

// Observer implements observability.Provider using log/slog.
type Observer struct {
	logger  *slog.Logger
	metrics *metricsStore
}

var _ observability.Provider = (*Observer)(nil)

// New creates a new slog-based observer. A nil logger falls back to
// slog.Default().
func New(logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{
		logger:  logger,
		metrics: newMetricsStore(),
	}
}

// NewFromEnv creates an observer whose level and format come from the
// LOG_LEVEL (DEBUG, INFO, WARN, ERROR) and LOG_FORMAT (json, text)
// environment variables. The default is INFO-level text output on stderr.
func NewFromEnv() *Observer {
	options := &slog.HandlerOptions{Level: levelFromEnv()}

	var handler slog.Handler
	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, options)
	} else {
		handler = slog.NewTextHandler(os.Stderr, options)
	}
	return New(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// --- TRACING ---

// StartSpan starts a span and logs its beginning at debug level.
func (observer *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &slogSpan{
		name:      name,
		startTime: time.Now(),
		logger:    observer.logger,
		attrs:     attrs,
	}
	observer.logger.LogAttrs(ctx, slog.LevelDebug, "span started", span.logAttrs("span.start")...)
	return ctx, span
}

type slogSpan struct {
	name      string
	startTime time.Time
	logger    *slog.Logger
	mu        sync.Mutex
	attrs     []observability.Attribute
}

func (span *slogSpan) logAttrs(event string, extra ...slog.Attr) []slog.Attr {
	logAttrs := []slog.Attr{
		slog.String("span", span.name),
		slog.String("event", event),
	}
	logAttrs = append(logAttrs, extra...)
	for _, attr := range span.attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	return logAttrs
}

func (span *slogSpan) End() {
	span.mu.Lock()
	defer span.mu.Unlock()
	span.logger.LogAttrs(context.Background(), slog.LevelInfo, "span ended",
		span.logAttrs("span.end", slog.Duration("duration", time.Since(span.startTime)))...)
}

func (span *slogSpan) SetAttributes(attrs ...observability.Attribute) {
	span.mu.Lock()
	defer span.mu.Unlock()
	span.attrs = append(span.attrs, attrs...)
}

func (span *slogSpan) SetStatus(code observability.StatusCode, description string) {
	span.mu.Lock()
	defer span.mu.Unlock()

	status := "unset"
	switch code {
	case observability.StatusOK:
		status = "ok"
	case observability.StatusError:
		status = "error"
	}

	span.attrs = append(span.attrs, observability.String(observability.AttrStatus, status))
	if description != "" {
		span.attrs = append(span.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

func (span *slogSpan) RecordError(err error) {
	if err == nil {
		return
	}
	span.mu.Lock()
	defer span.mu.Unlock()
	span.attrs = append(span.attrs, observability.Error(err))
	span.logger.LogAttrs(context.Background(), slog.LevelError, "span error",
		slog.String("span", span.name), slog.String("error", err.Error()))
}

// --- METRICS ---

// Counter creates or retrieves a named counter.
func (observer *Observer) Counter(name string) observability.Counter {
	return observer.metrics.counter(name, observer.logger)
}

// Histogram creates or retrieves a named histogram.
func (observer *Observer) Histogram(name string) observability.Histogram {
	return observer.metrics.histogram(name, observer.logger)
}

// metricsStore holds metrics in memory, keyed by name.
type metricsStore struct {
	mu         sync.Mutex
	counters   map[string]*slogCounter
	histograms map[string]*slogHistogram
}

func newMetricsStore() *metricsStore {
	return &metricsStore{
		counters:   make(map[string]*slogCounter),
		histograms: make(map[string]*slogHistogram),
	}
}

func (store *metricsStore) counter(name string, logger *slog.Logger) *slogCounter {
	store.mu.Lock()
	defer store.mu.Unlock()
	if counter, exists := store.counters[name]; exists {
		return counter
	}
	counter := &slogCounter{name: name, logger: logger}
	store.counters[name] = counter
	return counter
}

func (store *metricsStore) histogram(name string, logger *slog.Logger) *slogHistogram {
	store.mu.Lock()
	defer store.mu.Unlock()
	if histogram, exists := store.histograms[name]; exists {
		return histogram
	}
	histogram := &slogHistogram{name: name, logger: logger}
	store.histograms[name] = histogram
	return histogram
}

type slogCounter struct {
	name   string
	logger *slog.Logger
	mu     sync.Mutex
	value  int64
}

func (counter *slogCounter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	counter.mu.Lock()
	counter.value += value
	currentValue := counter.value
	counter.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", counter.name),
		slog.String("type", "counter"),
		slog.Int64("value", currentValue),
	}
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	counter.logger.LogAttrs(ctx, slog.LevelDebug, "metric", logAttrs...)
}

type slogHistogram struct {
	name   string
	logger *slog.Logger
	mu     sync.Mutex
	count  int64
	sum    float64
}

func (histogram *slogHistogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	histogram.mu.Lock()
	histogram.count++
	histogram.sum += value
	count, sum := histogram.count, histogram.sum
	histogram.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", histogram.name),
		slog.String("type", "histogram"),
		slog.Float64("value", value),
		slog.Int64("count", count),
		slog.Float64("sum", sum),
	}
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	histogram.logger.LogAttrs(ctx, slog.LevelDebug, "metric", logAttrs...)
}

// --- LOGGING ---

func (observer *Observer) log(ctx context.Context, level slog.Level, msg string, attrs []observability.Attribute) {
	logAttrs := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	observer.logger.LogAttrs(ctx, level, msg, logAttrs...)
}

func (observer *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, slog.LevelDebug, msg, attrs)
}

func (observer *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, slog.LevelInfo, msg, attrs)
}

func (observer *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, slog.LevelWarn, msg, attrs)
}

func (observer *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, slog.LevelError, msg, attrs)
}
