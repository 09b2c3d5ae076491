package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/schoolgrid/timetable/internal/timeslot"
)

type Config struct {
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`

	// Weekly grid shape. Days are display labels in weekday order, slots
	// are 12-hour labels the grid rows are keyed by.
	GridDays  []string       `mapstructure:"GRID_DAYS"`
	GridSlots timeslot.Slots `mapstructure:"GRID_SLOTS"`
}

func Load() (*Config, error) {
	// A missing .env file is fine, plain environment variables still apply.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   os.Getenv("ENV"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		GridDays:      splitList(os.Getenv("GRID_DAYS")),
		GridSlots:     timeslot.Slots(splitList(os.Getenv("GRID_SLOTS"))),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if len(cfg.GridSlots) == 0 {
		cfg.GridSlots = timeslot.DefaultSlots
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if err := cfg.GridSlots.Validate(); err != nil {
		return nil, fmt.Errorf("GRID_SLOTS: %w", err)
	}

	return cfg, nil
}

// splitList parses a comma-separated env value, trimming blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
