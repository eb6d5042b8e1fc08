// Package app assembles the auth service from its parts and owns the
// server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	authhttp "github.com/athleteone/athleteone/internal/auth/http"
	"github.com/athleteone/athleteone/internal/auth/service"
	"github.com/athleteone/athleteone/internal/auth/store"
	sqlitestore "github.com/athleteone/athleteone/internal/auth/store/drivers/sqlite"
	"github.com/athleteone/athleteone/internal/metrics"
	"github.com/athleteone/athleteone/pkg/cryptox"
	"github.com/athleteone/athleteone/pkg/jwtx"
	"github.com/athleteone/athleteone/pkg/slogx"
)

// Application holds the wired service and its resources.
type Application struct {
	cfg    Config
	log    *slog.Logger
	store  store.Store
	server *http.Server
}

// New wires the store, services and router. Call Run to serve and
// Shutdown to release resources.
func New(cfg Config) (*Application, error) {
	log := slogx.New(slogx.Config{
		Service: "athleteone-auth",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	cryptox.SetPepperPath(cfg.PepperFile)

	st, err := sqlitestore.Open(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("app: open store: %w", err)
	}

	if cfg.SeedDemoData {
		ctx := slogx.WithContext(context.Background(), log)
		if err := service.SeedDemoData(ctx, st); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
	}

	signer := jwtx.NewHS256Signer(cfg.SessionIssuer, []byte(cfg.SessionSecret))
	verifier := jwtx.NewHS256Verifier(cfg.SessionIssuer, []byte(cfg.SessionSecret))

	m := metrics.New()
	router := authhttp.NewRouter(authhttp.RouterConfig{
		Auth:          service.NewAuth(st, signer, cfg.SessionTTL),
		Opportunities: service.NewOpportunities(st),
		Verifier:      verifier,
		RefreshGrace:  cfg.RefreshGrace,
		Metrics:       m,
		Logger:        log,
		CORSOrigins:   cfg.CORSOrigins,
		Ping:          st.Ping,
	})

	return &Application{
		cfg:   cfg,
		log:   log,
		store: st,
		server: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Run serves until the listener fails or Shutdown is called.
func (a *Application) Run() error {
	a.log.Info("listening", "addr", a.cfg.ListenAddr, "env", a.cfg.Env)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("app: serve: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (a *Application) Shutdown(ctx context.Context) error {
	a.log.Info("shutting down")

	err := a.server.Shutdown(ctx)
	if closeErr := a.store.Close(); err == nil {
		err = closeErr
	}
	return err
}
