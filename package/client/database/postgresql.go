package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"lms/internal/config"
	"lms/package/logger"
)

func Init(config *config.Config) *sql.DB {
	logger.Log.Info(fmt.Sprintf("Connecting to host=%s port=%d user=%s dbname=%s",
		config.Storage.Host, config.Storage.Port, config.Storage.Username, config.Storage.Database))

	db, err := sql.Open("postgres", DSN(config))
	if err != nil {
		logger.Log.Error(err)
		logger.Log.Fatal("Can not connect to database")
	}

	db.SetMaxOpenConns(config.Storage.MaxOpenConns)
	db.SetMaxIdleConns(config.Storage.MaxIdleConns)

	if err = db.Ping(); err != nil {
		logger.Log.Error(err)
		logger.Log.Fatal("Database is not reachable")
	}

	logger.Log.Info("Connected to database")
	return db
}

func DSN(config *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		config.Storage.Username, config.Storage.Password,
		config.Storage.Host, config.Storage.Port, config.Storage.Database)
}

// RunMigrations applies all pending migrations from the configured directory.
func RunMigrations(config *config.Config) error {
	m, err := migrate.New("file://"+config.Storage.MigrationsPath, DSN(config))
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	logger.Log.Info("Migrations are up to date")
	return nil
}
