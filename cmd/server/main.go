package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/wishlist/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded configuration from .env file")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The sqlite driver won't create intermediate directories.
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Start()
}

// loadConfig reads configuration from the environment.
//
//	PORT          optional, default 8080
//	DB_PATH       optional, default data/wishlist.db
//	JWT_SECRET    required — refusing to boot beats silently signing
//	              tokens with an empty secret
//	JWT_LIFETIME  optional Go duration string, default 24h
func loadConfig() (server.Config, error) {
	cfg := server.Config{
		Port:          8080,
		DBPath:        "data/wishlist.db",
		TokenLifetime: 24 * time.Hour,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if lifetimeStr := os.Getenv("JWT_LIFETIME"); lifetimeStr != "" {
		lifetime, err := time.ParseDuration(lifetimeStr)
		if err != nil {
			return cfg, fmt.Errorf("invalid JWT_LIFETIME %q: %w", lifetimeStr, err)
		}
		cfg.TokenLifetime = lifetime
	}

	return cfg, nil
}
