package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hradmin/internal/app/server"
	"hradmin/internal/platform/config"
	"hradmin/internal/platform/db"
	"hradmin/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:          "hradmin",
	Short:        "HR administration service",
	Long:         `hradmin manages departments, positions, employees, attendance, leave and performance reviews.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := server.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.Run(ctx)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := databaseConfig()
		if err != nil {
			return err
		}
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
		return printStatus(cfg)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the most recent migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := databaseConfig()
		if err != nil {
			return err
		}
		steps, _ := cmd.Flags().GetInt("steps")
		if err := db.Rollback(cfg.DatabaseURL, steps); err != nil {
			return err
		}
		return printStatus(cfg)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied and latest schema versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := databaseConfig()
		if err != nil {
			return err
		}
		return printStatus(cfg)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and optionally demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx := cmd.Context()
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()

		if err := db.Seed(ctx, pool, cfg, log); err != nil {
			return err
		}
		if demo, _ := cmd.Flags().GetBool("demo"); demo {
			return db.SeedDemo(ctx, pool, log)
		}
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to revert")
	seedCmd.Flags().Bool("demo", false, "Load demo departments, positions and employees into an empty database")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads and validates the configuration and builds the process logger.
func setup() (config.Config, *zap.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	zap.ReplaceGlobals(log)
	return cfg, log, nil
}

// databaseConfig is the configuration for commands that only touch the
// schema, which need nothing beyond DATABASE_URL.
func databaseConfig() (config.Config, error) {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return config.Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func printStatus(cfg config.Config) error {
	status, err := db.Status(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	fmt.Printf("current: %d  latest: %d  dirty: %t\n", status.CurrentVersion, status.LatestVersion, status.Dirty)
	if status.Pending {
		fmt.Println("pending migrations exist, run `hradmin migrate up`")
	}
	return nil
}
