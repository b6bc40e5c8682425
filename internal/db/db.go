package db

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/perbu/adsvideo/internal/db/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// DB wraps a database connection
type DB struct {
	*sql.DB
}

// Open opens the job database and runs migrations
func Open(dataDir string) (*DB, error) {
	dbPath := filepath.Join(dataDir, "adsvideo.db")

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}
