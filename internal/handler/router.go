package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/middleware"
	"github.com/passgen/passgen-go/internal/service"
)

// RouterConfig wires services into the HTTP API.
// Accounts and Tokens are nil when no database is available; account routes are then not mounted.
type RouterConfig struct {
	Generator      *service.GeneratorService
	Accounts       *service.AccountService
	Tokens         *crypto.TokenIssuer
	Metrics        prometheus.Gatherer
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the API routes. ctx bounds background work such as rate limiter cleanup.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	genHandler := NewGeneratorHandler(cfg.Generator)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{}))
	}

	r.Get("/api/v1/generate/options", genHandler.HandleOptions)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		if cfg.Tokens != nil {
			r.Use(middleware.OptionalJWTAuth(cfg.Tokens))
		}
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
	})

	if cfg.Accounts == nil || cfg.Tokens == nil {
		return r
	}

	authHandler := NewAuthHandler(cfg.Accounts)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, 5, 10))
		r.Post("/api/v1/auth/register", authHandler.HandleRegister)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.Tokens))
		r.Get("/api/v1/auth/me", authHandler.HandleMe)
		r.Get("/api/v1/history", genHandler.HandleHistory)
	})

	return r
}
