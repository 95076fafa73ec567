// Package server wires the router, middleware, and handlers together and
// owns the HTTP server lifecycle.
//
// COMPOSITION ROOT:
// New assembles the whole dependency graph in one place:
//
//	sqlite.DB → services (auth/catalog/order/admin) → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, nothing below this package knows how
// anything else is constructed.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/ecommerce-api/internal/auth"
	"github.com/sakif/ecommerce-api/internal/config"
	"github.com/sakif/ecommerce-api/internal/handler"
	"github.com/sakif/ecommerce-api/internal/middleware"
	sqliteRepo "github.com/sakif/ecommerce-api/internal/repository/sqlite"
	"github.com/sakif/ecommerce-api/internal/service"
)

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	cfg    config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds a Server from the loaded configuration.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router; tests mount it on httptest.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start does this itself on shutdown; Close
// exists for tests that never call Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and the route table.
//
// ROUTES:
//
//	GET  /                  → service banner
//	POST /api/register      → create account
//	POST /api/login         → issue bearer token
//	GET  /api/products      → list catalog
//	GET  /api/products/{id} → one product
//	POST /api/orders        → create order        (token)
//	GET  /api/orders        → grouped history     (token)
//	POST /api/query         → raw SQL             (token + admin)
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(
		s.cfg.JWTSecret,
		time.Duration(s.cfg.TokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// Services share the one repository-backed DB.
	authService := service.NewAuthService(s.db, passwords, tokens, s.logger)
	catalogService := service.NewCatalogService(s.db, s.logger)
	orderService := service.NewOrderService(s.db, s.logger)
	adminService := service.NewAdminService(s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	productHandler := handler.NewProductHandler(catalogService, s.logger)
	orderHandler := handler.NewOrderHandler(orderService, s.logger)
	queryHandler := handler.NewQueryHandler(adminService, s.logger)

	// Global middleware, in order: request id, real client IP, panic
	// recovery, request logging, CORS.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// CORS is fully open: the frontend is served from a separate origin
	// by the external supervisor, and this API is a local demo surface.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"E-Commerce API"}`))
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Get("/products", productHandler.HandleList)
		r.Get("/products/{id}", productHandler.HandleGetByID)

		// Token-protected routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/orders", orderHandler.HandleCreate)
			r.Get("/orders", orderHandler.HandleList)
			r.Post("/query", queryHandler.HandleQuery)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(),
			config.DefaultShutdownSeconds*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
