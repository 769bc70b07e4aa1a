package handlers

import (
	"net/http"
	"time"

	"github.com/pomandi/pomandi-landing-pages/internal/platform/httpx"
)

// HealthHandlers reports process liveness.
type HealthHandlers struct {
	startedAt time.Time
	clock     func() time.Time
}

// HealthOption customises HealthHandlers.
type HealthOption func(*HealthHandlers)

// WithHealthClock overrides the clock, for tests.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithHealthStartedAt sets the process start time reported as uptime.
func WithHealthStartedAt(t time.Time) HealthOption {
	return func(h *HealthHandlers) {
		h.startedAt = t
	}
}

// NewHealthHandlers builds health handlers.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.startedAt.IsZero() {
		h.startedAt = h.clock()
	}
	return h
}

// Healthz responds with a simple status payload.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.startedAt).String(),
		"timestamp": now.UTC().Format(time.RFC3339),
	})
}
