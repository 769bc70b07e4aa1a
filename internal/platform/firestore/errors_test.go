package firestore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pomandi/pomandi-landing-pages/internal/platform/config"
)

func TestWrapErrorClassifies(t *testing.T) {
	notFound := WrapError("pages.get", status.Error(codes.NotFound, "missing"))
	if !IsNotFound(notFound) {
		t.Fatalf("expected not found, got %v", notFound)
	}
	if got := notFound.Error(); got != "pages.get: rpc error: code = NotFound desc = missing" {
		t.Errorf("unexpected message %q", got)
	}

	unavailable := WrapError("pages.scan", status.Error(codes.Unavailable, "down"))
	var fsErr *Error
	if !errors.As(unavailable, &fsErr) || !fsErr.IsUnavailable() {
		t.Fatalf("expected unavailable error, got %v", unavailable)
	}
}

func TestWrapErrorPassesThroughContextErrors(t *testing.T) {
	if err := WrapError("op", context.Canceled); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	wrapped := fmt.Errorf("x: %w", context.DeadlineExceeded)
	if err := WrapError("op", wrapped); err != wrapped {
		t.Fatalf("expected passthrough, got %v", err)
	}
	if WrapError("op", nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestProviderRequiresProjectID(t *testing.T) {
	p := NewProvider(config.FirestoreConfig{})
	if _, err := p.Client(context.Background()); err == nil {
		t.Fatalf("expected error without project id")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := p.Client(context.Background()); !errors.Is(err, ErrProviderClosed) {
		t.Fatalf("expected ErrProviderClosed, got %v", err)
	}
}
