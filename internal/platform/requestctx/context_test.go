package requestctx

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestLoggerDefaultsToNoop(t *testing.T) {
	if got := Logger(context.Background()); got != NoopLogger() {
		t.Fatalf("expected noop logger, got %v", got)
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	logger := zap.NewExample()
	ctx := WithLogger(context.Background(), logger)
	if got := Logger(ctx); got != logger {
		t.Fatalf("expected stored logger")
	}
	if got := Logger(WithLogger(ctx, nil)); got != NoopLogger() {
		t.Fatalf("nil logger should fall back to noop")
	}
}

func TestTraceID(t *testing.T) {
	if TraceID(context.Background()) != "" {
		t.Fatalf("expected empty trace id")
	}
	ctx := WithTraceID(context.Background(), "abc123")
	if got := TraceID(ctx); got != "abc123" {
		t.Fatalf("expected abc123, got %q", got)
	}
}
