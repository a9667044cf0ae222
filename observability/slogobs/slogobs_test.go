package slogobs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/flowcanvas/flowcanvas/observability"
)

func newBufferedObserver() (*Observer, *bytes.Buffer) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(logger), &buffer
}

func TestInfo_RendersAttributes(testCase *testing.T) {
	observer, buffer := newBufferedObserver()

	observer.Info(context.Background(), "run started",
		observability.String("run_id", "abc"),
		observability.Int("total_nodes", 3),
	)

	output := buffer.String()
	if !strings.Contains(output, "run started") {
		testCase.Errorf("expected message in output, got %q", output)
	}
	if !strings.Contains(output, "run_id=abc") {
		testCase.Errorf("expected run_id attribute, got %q", output)
	}
	if !strings.Contains(output, "total_nodes=3") {
		testCase.Errorf("expected total_nodes attribute, got %q", output)
	}
}

func TestCounter_Accumulates(testCase *testing.T) {
	observer, buffer := newBufferedObserver()

	counter := observer.Counter("nodes.executed")
	counter.Add(context.Background(), 1)
	counter.Add(context.Background(), 2)

	output := buffer.String()
	if !strings.Contains(output, "value=3") {
		testCase.Errorf("expected accumulated counter value 3, got %q", output)
	}

	// Same name returns the same counter instance.
	if observer.Counter("nodes.executed") != counter {
		testCase.Error("expected counter to be reused by name")
	}
}

func TestHistogram_TracksCountAndSum(testCase *testing.T) {
	observer, buffer := newBufferedObserver()

	histogram := observer.Histogram("node.duration")
	histogram.Record(context.Background(), 0.5)
	histogram.Record(context.Background(), 1.5)

	output := buffer.String()
	if !strings.Contains(output, "count=2") {
		testCase.Errorf("expected count 2, got %q", output)
	}
	if !strings.Contains(output, "sum=2") {
		testCase.Errorf("expected sum 2, got %q", output)
	}
}

func TestSpan_EndLogsDuration(testCase *testing.T) {
	observer, buffer := newBufferedObserver()

	_, span := observer.StartSpan(context.Background(), "run.execute",
		observability.String("run_id", "abc"))
	span.SetStatus(observability.StatusOK, "completed")
	span.End()

	output := buffer.String()
	if !strings.Contains(output, "span ended") {
		testCase.Errorf("expected span end entry, got %q", output)
	}
	if !strings.Contains(output, "status=ok") {
		testCase.Errorf("expected ok status, got %q", output)
	}
}

func TestContextHelpers(testCase *testing.T) {
	observer, _ := newBufferedObserver()

	ctx := observability.ContextWithObserver(context.Background(), observer)
	if observability.ObserverFromContext(ctx) != observer {
		testCase.Error("expected observer round-trip through context")
	}
	if observability.ObserverFromContext(context.Background()) != nil {
		testCase.Error("expected nil observer for bare context")
	}
}
