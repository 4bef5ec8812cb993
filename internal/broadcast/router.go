package broadcast

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/matheus3301/wschat/internal/metrics"
)

// NewRouter mounts the WebSocket endpoint at / and /ws, a health check at
// /healthz and Prometheus metrics at /metrics.
func NewRouter(s *Server, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.ServeHTTP)
	r.Get("/ws", s.ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":      "ok",
			"connections": s.Active(),
		})
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}
	return r
}
