package main

import (
	"context"
	"log"

	"github.com/schoolgrid/timetable/internal/app"
	"github.com/schoolgrid/timetable/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting timetable server",
		"environment", cfg.Environment,
		"addr", cfg.HTTPAddr)

	server := app.NewServer(cfg, logger)
	if err := server.Run(context.Background()); err != nil {
		logger.Sugar().Fatalw("Server exited with error", "error", err)
	}
}
