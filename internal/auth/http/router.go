// Package http wires the auth service endpoints onto net/http.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/athleteone/athleteone/internal/auth/service"
	"github.com/athleteone/athleteone/internal/metrics"
	"github.com/athleteone/athleteone/pkg/httpx"
	"github.com/athleteone/athleteone/pkg/jwtx"
	"github.com/athleteone/athleteone/pkg/slogx"
)

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	Auth          *service.Auth
	Opportunities *service.Opportunities
	Verifier      jwtx.Verifier
	RefreshGrace  time.Duration
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	CORSOrigins   []string

	// Ping checks the store; nil skips the check in health responses.
	Ping func(ctx context.Context) error
}

// NewRouter builds the full handler stack: request logging, metrics and
// CORS on the outside, auth and rate limits per route group.
func NewRouter(cfg RouterConfig) http.Handler {
	h := &handlers{
		auth:          cfg.Auth,
		opportunities: cfg.Opportunities,
		metrics:       cfg.Metrics,
		ping:          cfg.Ping,
	}

	requireAuth := httpx.RequireAuth(cfg.Verifier)
	allowExpired := httpx.RequireAuthAllowExpired(cfg.Verifier, cfg.RefreshGrace)
	strictLimit := httpx.RateLimit(httpx.RateLimitStrict)

	mux := http.NewServeMux()

	mux.Handle("POST /api/auth/login", httpx.Chain(http.HandlerFunc(h.login), strictLimit))
	mux.Handle("POST /api/auth/signup", httpx.Chain(http.HandlerFunc(h.signup), strictLimit))
	mux.Handle("POST /api/auth/logout", httpx.Chain(http.HandlerFunc(h.logout), requireAuth))
	mux.Handle("POST /api/auth/refresh", httpx.Chain(http.HandlerFunc(h.refresh), allowExpired))

	mux.Handle("GET /api/users/{userId}", httpx.Chain(http.HandlerFunc(h.getUser), requireAuth))
	mux.Handle("GET /api/opportunities", httpx.Chain(http.HandlerFunc(h.listOpportunities), requireAuth))

	mux.HandleFunc("GET /api/health", h.health)
	mux.Handle("GET /metrics", cfg.Metrics.Handler())

	corsMW := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return httpx.Chain(mux,
		slogx.HTTPMiddleware(cfg.Logger),
		cfg.Metrics.Middleware,
		corsMW,
		httpx.RateLimit(httpx.RateLimitDefault),
	)
}

type handlers struct {
	auth          *service.Auth
	opportunities *service.Opportunities
	metrics       *metrics.Metrics
	ping          func(ctx context.Context) error
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "Store unavailable")
			return
		}
	}
	httpx.WriteData(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
