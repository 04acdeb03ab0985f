package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/percentquiz/scoring-backend/internal/database"
	"github.com/percentquiz/scoring-backend/internal/logger"
	"github.com/percentquiz/scoring-backend/pkg/config"
)

const usage = `usage: migrate <command>

commands:
  up          apply all pending migrations
  down        roll back every migration
  version     print the current schema version
  force N     set the schema version without running migrations`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	appLogger, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer appLogger.Sync()

	m, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatal("Failed to create migrator", err)
	}
	defer m.Close()

	if err := run(m, os.Args[1:], appLogger); err != nil {
		appLogger.Fatal("Migration command failed", err, "command", os.Args[1])
	}
}

func run(m *migrate.Migrate, args []string, appLogger logger.Logger) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "version":
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		appLogger.Info("No migrations applied")
		return nil
	}
	if err != nil {
		return err
	}
	appLogger.Info("Schema version", "version", version, "dirty", dirty)
	return nil
}
