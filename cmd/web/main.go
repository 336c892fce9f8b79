package main

import (
	"fmt"
	"os"

	"github.com/de-tools/revenue-atlas/pkg/server"
	"github.com/de-tools/revenue-atlas/pkg/services/config"
	"github.com/de-tools/revenue-atlas/pkg/services/property"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/de-tools/revenue-atlas/pkg/store/database"
	propertystore "github.com/de-tools/revenue-atlas/pkg/store/property"
	"github.com/de-tools/revenue-atlas/pkg/store/pool"
	reservationstore "github.com/de-tools/revenue-atlas/pkg/store/reservation"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the revenue reporting API",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (REVENUE_* environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings := cfg.DatabaseSettings()
	provisioner := pool.NewProvisioner(pool.Opener(database.NewOpener(settings)), logger)

	// Warm the pool; a failure here is retried lazily by the first request.
	if err := provisioner.Initialize(ctx); err != nil {
		logger.Warn().Err(err).Msg("database not reachable at startup")
	}

	revenueSvc := revenue.NewService(provisioner, reservationstore.NewStore(settings.Driver))
	directory := property.NewDirectory(provisioner, propertystore.NewStore(settings.Driver))

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		JWTSecret:       []byte(cfg.Auth.JWTSecret),
		Dependencies: server.Dependencies{
			Revenue:    revenueSvc,
			Properties: directory,
			Storage:    provisioner,
		},
		OnShutdown: provisioner.Shutdown,
	})

	return api.Start(ctx)
}
