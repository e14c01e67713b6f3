package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/contentforge/contentforge-api/internal/app"
	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/contentforge/contentforge-api/internal/logging"
	"github.com/joho/godotenv"

	log "github.com/sirupsen/logrus"
)

// main runs the CLI entrypoint and exits on unrecoverable command errors.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if errRun := run(ctx, os.Args[1:]); errRun != nil {
		log.WithError(errRun).Error("command failed")
		stop()
		os.Exit(1)
	}
}

// run parses flags, loads config, and starts the server or the migration.
func run(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("contentforge", flag.ContinueOnError)
	cfgPath := flags.String("config", "", "config file path (or env CONFIG_PATH)")
	port := flags.Int("port", 0, "server port (overrides config and PORT)")
	envFile := flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
	migrateOnly := flags.Bool("migrate", false, "run database migrations and exit")
	if errParse := flags.Parse(args); errParse != nil {
		return errParse
	}

	if errEnv := godotenv.Load(*envFile); errEnv != nil && !errors.Is(errEnv, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", *envFile, errEnv)
	}

	cfg, errLoad := config.Load(config.ResolveConfigPath(*cfgPath))
	if errLoad != nil {
		return errLoad
	}
	if *port != 0 {
		if errValidate := validatePort(*port); errValidate != nil {
			return errValidate
		}
		cfg.Port = *port
	}

	logCloser, errLog := logging.Setup(cfg.Logging)
	if errLog != nil {
		return errLog
	}
	defer func() {
		if errClose := logCloser.Close(); errClose != nil {
			fmt.Fprintf(os.Stderr, "close log output: %v\n", errClose)
		}
	}()

	if *migrateOnly {
		if errMigrate := app.Migrate(cfg); errMigrate != nil {
			return errMigrate
		}
		log.Info("migrations applied")
		return nil
	}
	return app.RunServer(ctx, cfg)
}

func validatePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d", port)
	}
	return nil
}
