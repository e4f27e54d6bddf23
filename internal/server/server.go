// Package server wires the HTTP API: routing, middleware and the
// server lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"jobmanager/internal/auth"
	"jobmanager/internal/config"
	"jobmanager/internal/server/handlers"
	"jobmanager/internal/server/middleware"
	"jobmanager/internal/service"
	"jobmanager/internal/store"
)

// Stores bundles the store interfaces the server depends on.
type Stores struct {
	Accounts store.AccountStore
	Users    store.UserStore
	Jobs     store.JobStore
	Pinger   handlers.Pinger
}

// Server is the HTTP server for the API.
type Server struct {
	httpServer *http.Server
}

// New creates a new API server.
func New(cfg *config.Config, stores Stores, tokens *auth.TokenIssuer, metricsHandler http.Handler, log *slog.Logger) *Server {
	h := handlers.New(
		service.NewAccountService(stores.Accounts),
		service.NewUserService(stores.Users, stores.Accounts, cfg.BcryptCost),
		service.NewJobService(stores.Jobs, stores.Users),
		service.NewAuthService(stores.Users, tokens),
		log,
	)

	authMW := middleware.AuthMiddleware(tokens, stores.Users)
	rateMW := middleware.RateLimitMiddleware(cfg.RateLimit, cfg.RateLimitBurst)
	protected := func(handler http.HandlerFunc) http.Handler {
		return authMW(rateMW(handler))
	}

	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("GET /system/health-check", h.HealthCheck)
	mux.HandleFunc("GET /system/version", h.Version)
	mux.Handle("GET /system/ready", h.Ready(stores.Pinger))
	mux.Handle("GET /metrics", metricsHandler)

	// Accounts
	mux.Handle("GET /accounts", protected(h.ListAccounts))
	mux.Handle("POST /accounts", protected(h.CreateAccount))
	mux.Handle("GET /accounts/{id}", protected(h.GetAccount))
	mux.Handle("PUT /accounts/{id}", protected(h.UpdateAccount))
	mux.Handle("DELETE /accounts/{id}", protected(h.DeleteAccount))
	mux.Handle("PUT /accounts/{id}/activate", protected(h.ActivateAccount))
	mux.Handle("PUT /accounts/{id}/deactivate", protected(h.DeactivateAccount))

	// Users
	mux.Handle("GET /users", protected(h.ListUsers))
	mux.Handle("POST /users", protected(h.CreateUser))
	mux.Handle("GET /users/{id}", protected(h.GetUser))
	mux.Handle("PUT /users/{id}", protected(h.UpdateUser))
	mux.Handle("DELETE /users/{id}", protected(h.DeleteUser))
	mux.Handle("PUT /users/{id}/activate", protected(h.ActivateUser))
	mux.Handle("PUT /users/{id}/deactivate", protected(h.DeactivateUser))

	// Jobs
	mux.Handle("GET /jobs", protected(h.ListJobs))
	mux.Handle("GET /jobs/own", protected(h.ListOwnJobs))
	mux.Handle("GET /jobs/all", protected(h.ListAllJobs))
	mux.Handle("POST /jobs", protected(h.CreateJob))
	mux.Handle("GET /jobs/{id}", protected(h.GetJob))
	mux.Handle("DELETE /jobs/{id}", protected(h.DeleteJob))
	mux.Handle("PUT /jobs/{id}/run", protected(h.RunJob))
	mux.Handle("PUT /jobs/{id}/stop", protected(h.StopJob))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      middleware.RequestID(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutDownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.Shutdown(shutDownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
