// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trhaseeb/geo-report/internal/config"
	"github.com/trhaseeb/geo-report/internal/database"
	"github.com/trhaseeb/geo-report/internal/logging"
	filestorage "github.com/trhaseeb/geo-report/internal/storage/file"
	gormstorage "github.com/trhaseeb/geo-report/internal/storage/gorm"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, logManager *logging.SlogManager, dbLog zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "file":
		return filestorage.New(cfg.File, logManager), nil
	case "sqlite":
		db, err := database.GetSqliteDBStandalone(cfg.Database.SqlitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return gormstorage.New(gormstorage.Dependencies{DB: db, LogManager: logManager}), nil
	case "postgres":
		// Connect falls back to an in-memory sqlite DB when Postgres is
		// unreachable; the backend dumps it to SqlitePath on Close.
		mgr := database.NewManager(dbLog)
		mgr.SqliteFilePath = cfg.Database.SqlitePath
		if err := mgr.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return gormstorage.New(gormstorage.Dependencies{DB: mgr.DB, Manager: mgr, LogManager: logManager}), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
