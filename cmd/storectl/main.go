// Command storectl runs storefront maintenance tasks against the configured
// database and blob store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	appcmd "storefront/cmd"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storectl",
		Short:         "Storefront management commands",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCategoriesCmd())
	rootCmd.AddCommand(seedProductTypesCmd())
	rootCmd.AddCommand(importProductsCmd())
	rootCmd.AddCommand(autoCategorizeCmd())
	rootCmd.AddCommand(optimizeImagesCmd())
	rootCmd.AddCommand(generateFeedCmd())

	return rootCmd
}

// env is what every database-backed command starts from.
type env struct {
	cfg    appcmd.Config
	logger *slog.Logger
	db     *gorm.DB
	app    appcmd.CompositionRoot
}

func loadEnv() (*env, error) {
	cfg, err := appcmd.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := appcmd.NewLogger(cfg)
	db, err := appcmd.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, db: db, app: appcmd.NewCompositionRoot(cfg, db, logger)}, nil
}

func (e *env) Close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
