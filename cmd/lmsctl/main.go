// lmsctl is the operations companion of the API server: it applies schema
// migrations and loads the sample fixtures.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lms/internal/config"
	"lms/internal/seed"
	"lms/package/client/database"
	"lms/package/logger"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "lmsctl",
		Short:        "Library management service operations",
		SilenceUsage: true,
	}
	root.AddCommand(migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down [N]|version]",
		Short: "Apply or roll back schema migrations",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			m, err := migrate.New("file://"+cfg.Storage.MigrationsPath, database.DSN(cfg))
			if err != nil {
				return fmt.Errorf("migration init: %w", err)
			}
			defer m.Close()

			switch args[0] {
			case "up":
				if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("up: %w", err)
				}
				logger.Log.Info("Migrations: up completed")
			case "down":
				steps := 1
				if len(args) > 1 {
					if steps, err = strconv.Atoi(args[1]); err != nil || steps < 1 {
						return fmt.Errorf("down: invalid steps argument %q", args[1])
					}
				}
				if err = m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("down: %w", err)
				}
				logger.Log.Info("Migrations: down completed")
			case "version":
				v, dirty, err := m.Version()
				if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
					return fmt.Errorf("version: %w", err)
				}
				fmt.Printf("version: %d  dirty: %v\n", v, dirty)
			default:
				return fmt.Errorf("unknown migrate command %q", args[0])
			}
			return nil
		},
	}
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample users, authors, genres, books and waitlist entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetConfig()
			db := database.Init(cfg)
			defer func(db *sql.DB) {
				_ = db.Close()
			}(db)
			return seed.Run(context.Background(), db)
		},
	}
}
