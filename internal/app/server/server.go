package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payhub/internal/db"
	"payhub/internal/platform/config"
	"payhub/internal/transport/http/api"
	authhandler "payhub/internal/transport/http/handlers/auth"
	"payhub/internal/transport/http/handlers/dashboard"
	"payhub/internal/transport/http/handlers/employees"
	"payhub/internal/transport/http/handlers/payslips"
	"payhub/internal/transport/http/handlers/promotions"
	"payhub/internal/transport/http/middleware"
)

// App wires the database pool and HTTP router. Router is exposed so tests can
// drive the full stack through httptest without a listener.
type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router chi.Router
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	app := &App{Config: cfg, DB: pool}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Auth(a.Config.JWTSecret))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		api.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := a.DB.Ping(req.Context()); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		api.Success(w, map[string]string{"status": "ready"})
	})

	authH := authhandler.NewHandler(a.DB, a.Config.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authH.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Put("/admin/credentials", authH.HandleUpdateCredentials)
			employees.NewHandler(a.DB).RegisterRoutes(r)
			promotions.NewHandler(a.DB).RegisterRoutes(r)
			payslips.NewHandler(a.DB).RegisterRoutes(r)
			dashboard.NewHandler(a.DB).RegisterRoutes(r)
		})
	})

	return r
}

func (a *App) Close() {
	a.DB.Close()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", a.Config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
