// Package server sets up the HTTP server, the router, and the dependency
// graph. This is the composition root: everything is wired here, once, and
// main.go only supplies configuration.
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

	"github.com/sakif/wishlist/internal/auth"
	"github.com/sakif/wishlist/internal/handler"
	"github.com/sakif/wishlist/internal/middleware"
	sqliteRepo "github.com/sakif/wishlist/internal/repository/sqlite"
	"github.com/sakif/wishlist/internal/service"
)

// Config holds server configuration. JWTSecret and TokenLifetime are the
// whole configuration surface the security core consumes.
type Config struct {
	Port          int
	DBPath        string
	JWTSecret     string
	TokenLifetime time.Duration
}

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and assembles the whole dependency chain:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Each layer receives interfaces or services, never the layer below that.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes wires middleware, services, and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /api/auth/register             → create account
//	POST   /api/auth/login                → issue token
//	GET    /api/wishlists/{id}            → read a list (public)
//	GET    /api/wishlists/{id}/gifts      → read a list's gifts (public)
//	GET    /api/gifts/{id}                → read a gift (public)
//	POST   /api/gifts/{id}/toggle-reserved→ flip reservation (public, on purpose)
//	GET    /api/wishlists                 → caller's lists        (auth)
//	POST   /api/wishlists                 → create list           (auth)
//	PUT    /api/wishlists/{id}            → update list           (auth + owner)
//	DELETE /api/wishlists/{id}            → delete list + gifts   (auth + owner)
//	POST   /api/wishlists/{id}/gifts      → create gift           (auth + owner)
//	PUT    /api/gifts/{id}                → update gift           (auth + owner)
//	DELETE /api/gifts/{id}                → delete gift           (auth + owner)
//	POST   /api/gifts/{id}/reserve        → reserve gift          (auth, no owner check)
//
// toggle-reserved staying outside the auth group is a product decision,
// not a missing middleware — see GiftService.ToggleReserved.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenLifetime)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	userService := service.NewUserService(s.db.Users(), passwords, s.logger)
	authService := service.NewAuthService(userService, tokens, passwords, s.logger)
	listService := service.NewWishListService(s.db.WishLists(), userService, s.logger)
	giftService := service.NewGiftService(s.db.Gifts(), s.db.WishLists(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	listHandler := handler.NewWishListHandler(listService, authService, s.logger)
	giftHandler := handler.NewGiftHandler(giftService, authService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		// Public reads + the deliberately unauthenticated toggle.
		r.Get("/wishlists/{id}", listHandler.HandleGetByID)
		r.Get("/wishlists/{id}/gifts", giftHandler.HandleListByWishList)
		r.Get("/gifts/{id}", giftHandler.HandleGetByID)
		r.Post("/gifts/{id}/toggle-reserved", giftHandler.HandleToggleReserved)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/wishlists", listHandler.HandleListMine)
			r.Post("/wishlists", listHandler.HandleCreate)
			r.Put("/wishlists/{id}", listHandler.HandleUpdate)
			r.Delete("/wishlists/{id}", listHandler.HandleDelete)

			r.Post("/wishlists/{id}/gifts", giftHandler.HandleCreate)
			r.Put("/gifts/{id}", giftHandler.HandleUpdate)
			r.Delete("/gifts/{id}", giftHandler.HandleDelete)
			r.Post("/gifts/{id}/reserve", giftHandler.HandleReserve)
		})
	})

	return nil
}

// Router exposes the configured router, mainly for tests that want to
// drive the full HTTP stack with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests (30s),
// close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
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
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.Duration("tokenLifetime", s.config.TokenLifetime),
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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
