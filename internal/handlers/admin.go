package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/pages"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/httpx"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
)

// AdminHandlers exposes the page inventory.
type AdminHandlers struct {
	store pages.Store
	clock func() time.Time
}

// AdminOption customises AdminHandlers.
type AdminOption func(*AdminHandlers)

// WithAdminClock overrides the clock stamped on inventory responses.
func WithAdminClock(clock func() time.Time) AdminOption {
	return func(h *AdminHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// NewAdminHandlers returns inventory handlers over store.
func NewAdminHandlers(store pages.Store, opts ...AdminOption) *AdminHandlers {
	h := &AdminHandlers{store: store, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers the admin routes.
func (h *AdminHandlers) Routes(r chi.Router) {
	r.With(noStore).Get("/api/admin/pages", h.ListPages)
}

type adminIndexError struct {
	Pages []pages.IndexEntry `json:"pages"`
	Error string             `json:"error"`
}

// ListPages returns every stored page, malformed ones included as error placeholders.
func (h *AdminHandlers) ListPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, err := h.store.Scan(ctx)
	if err != nil {
		requestctx.Logger(ctx).Error("scan page configs", zap.Error(err))
		httpx.WriteJSON(w, http.StatusInternalServerError, adminIndexError{
			Pages: []pages.IndexEntry{},
			Error: "Failed to load landing pages",
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pages.NewAdminIndex(pages.BuildIndex(entries), h.clock()))
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
