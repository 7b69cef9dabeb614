// Package config holds service configuration and database bootstrap.
package config

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jbweber/homelab/restkit/internal/migrations"
	_ "modernc.org/sqlite"
)

// Config holds all configuration for the restkit service.
type Config struct {
	DBPath string
	Addr   string
}

// New creates a Config with defaults, overridden by environment variables
// RESTKIT_DB_PATH and RESTKIT_ADDR so main stays lean.
func New() *Config {
	c := &Config{
		DBPath: "~/restkit/data/restkit.db",
		Addr:   ":8080",
	}
	if v := os.Getenv("RESTKIT_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("RESTKIT_ADDR"); v != "" {
		c.Addr = v
	}
	return c
}

// InitializeDatabase opens the SQLite database, applies pragmas and pool
// settings, and runs migrations.
func (c *Config) InitializeDatabase() (*sql.DB, error) {
	dbPath := c.expandPath(c.DBPath)

	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	TuneConnectionPool(db)

	if err := ApplyPragmas(db); err != nil {
		return nil, fmt.Errorf("failed to apply performance pragmas: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// expandPath expands a leading ~ to the user's home directory.
func (c *Config) expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}

func runMigrations(db *sql.DB) error {
	migrator := migrations.NewMigrator(db)
	for _, migration := range migrations.All() {
		migrator.Register(migration)
	}
	return migrator.Run()
}
