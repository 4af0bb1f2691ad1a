package database

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/matthieukhl/expotrack/internal/config"
)

type DB struct {
	*sql.DB
	driver string
}

// NewConnection creates a new database connection using the provided config
func NewConnection(cfg *config.SnapshotConfig) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "mysql"
	}
	if driver != "mysql" && driver != "sqlite3" {
		return nil, fmt.Errorf("unsupported snapshot driver: %s", driver)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("snapshot dsn is empty")
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if driver == "sqlite3" {
		// one writer; also keeps ":memory:" databases on a single connection
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn := &DB{DB: db, driver: driver}
	if err := conn.SetupSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return conn, nil
}

// Driver returns the database/sql driver name in use
func (db *DB) Driver() string {
	return db.driver
}

// HealthCheck performs a simple health check on the database
func (db *DB) HealthCheck() error {
	return db.Ping()
}
