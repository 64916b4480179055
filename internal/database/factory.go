package database

import (
	"fmt"
	"path/filepath"

	"ospl-go/internal/config"
	"ospl-go/internal/ospl"
)

// NewDatabaseFromConfig opens the relational store of the library at root.
func NewDatabaseFromConfig(cfg config.DatabaseConfig, root string) (*SQLiteDatabase, error) {
	path, err := databasePath(cfg, root)
	if err != nil {
		return nil, err
	}
	return NewSQLiteDatabase(path)
}

// CreateDatabaseFromConfig creates and migrates the relational store of a new
// library at root.
func CreateDatabaseFromConfig(cfg config.DatabaseConfig, root string) (*SQLiteDatabase, error) {
	path, err := databasePath(cfg, root)
	if err != nil {
		return nil, err
	}
	return CreateSQLiteDatabase(path)
}

func databasePath(cfg config.DatabaseConfig, root string) (string, error) {
	switch cfg.Type {
	case "sqlite":
		if root == "" {
			return "", fmt.Errorf("library path required for sqlite database")
		}
		return filepath.Join(root, ospl.DatabaseFilename), nil
	case "memory":
		return ":memory:", nil
	default:
		return "", fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
