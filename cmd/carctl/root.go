package main

import (
	"context"
	"fmt"

	"github.com/hytech-racing/car-search-webserver/internal/config"
	"github.com/hytech-racing/car-search-webserver/internal/database"
	"github.com/hytech-racing/car-search-webserver/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	envFile string
	driver  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "carctl",
		Short:         "Seed, search and export the car catalog without going through the webserver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "env file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "override STORE_DRIVER (mongo, badger, memory)")

	cmd.AddCommand(
		newSeedCmd(opts),
		newSearchCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// open reads the configuration and opens the configured car store.
func (o *rootOptions) open(ctx context.Context) (*config.Config, *database.DatabaseClient, *zap.Logger, error) {
	cfg, err := config.ReadConfig(o.envFile)
	if err != nil {
		return nil, nil, nil, err
	}
	if o.driver != "" {
		cfg.Store.Driver = o.driver
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.Logging.Level, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	dbClient, err := database.NewDatabaseClient(ctx, cfg.Store)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	return cfg, dbClient, logger, nil
}
