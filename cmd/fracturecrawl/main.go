// Package main is the entry point for FractureCrawl.
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/fracturecrawl/internal/game"
	"github.com/samdwyer/fracturecrawl/internal/logger"
	"github.com/samdwyer/fracturecrawl/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_FRACTURECRAWL_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	logr := logger.New(cfg.LogLevel, cfg.LogFormat, out)

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry())
	if err != nil {
		logr.WithError(err).Warn("Telemetry setup failed; running without observability.")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logr.WithError(err).Error("Error shutting down telemetry.")
			}
		}()
	}

	// Create and run game
	g, err := game.New(cfg, logr)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		logr.WithError(err).Error("Game error.")
		log.Fatalf("Game error: %v", err)
	}
}
