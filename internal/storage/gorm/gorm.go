// Package gormstorage implements the storage.Backend interface on a GORM
// database. Documents are stored one row per project with the full JSON
// payload alongside indexed columns for listing.
package gormstorage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trhaseeb/geo-report/internal/database"
	"github.com/trhaseeb/geo-report/internal/logging"
	"github.com/trhaseeb/geo-report/internal/project"
)

// ProjectRecord is the database row for a persisted project document.
type ProjectRecord struct {
	ID        string         `gorm:"primaryKey"`
	Title     string         `gorm:"index"`
	Author    string
	Rotation  int
	Data      datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name.
func (ProjectRecord) TableName() string {
	return "projects"
}

// Dependencies holds everything the backend needs. Manager is optional;
// when present it owns the connection and its in-memory fallback is dumped
// to disk on Close.
type Dependencies struct {
	DB         *gorm.DB
	Manager    *database.Manager
	LogManager *logging.SlogManager
}

// Backend persists project documents to a GORM database.
type Backend struct {
	db      *gorm.DB
	manager *database.Manager
	log     *logging.SlogManager
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{
		db:      deps.DB,
		manager: deps.Manager,
		log:     deps.LogManager,
	}
}

// Init migrates the projects table.
func (b *Backend) Init() error {
	if b.db == nil {
		return fmt.Errorf("no database connection")
	}
	if b.manager != nil {
		return b.manager.Setup(&ProjectRecord{})
	}
	if err := b.db.AutoMigrate(&ProjectRecord{}); err != nil {
		return fmt.Errorf("failed to migrate projects table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection. A fallback DB that only
// lives in memory is dumped to disk first so its projects survive restarts.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	if b.manager != nil && b.manager.ShouldSaveLocal && b.manager.SqliteFilePath != "" {
		if err := b.manager.DumpMemoryToDisk(); err != nil {
			b.log.WriteLog("gorm:Close", fmt.Sprintf("Error dumping fallback DB to disk: %v", err), "ERROR")
		}
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save upserts the document row keyed by project ID.
func (b *Backend) Save(doc *project.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}

	record := ProjectRecord{
		ID:        doc.ID,
		Title:     doc.Title,
		Author:    doc.Author,
		Rotation:  doc.Rotation,
		Data:      datatypes.JSON(data),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}

	err = b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	b.log.WriteLog("gorm:Save", fmt.Sprintf("Saved project %s (%s)", doc.Title, doc.ID), "INFO")
	return nil
}

// Load fetches a document by project ID.
func (b *Backend) Load(ref string) (*project.Document, error) {
	var record ProjectRecord
	err := b.db.First(&record, "id = ?", ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("project %s not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	return project.Decode(b.log.Logger(), []byte(record.Data))
}

// List returns the stored project IDs, most recently updated first.
func (b *Backend) List() ([]string, error) {
	var ids []string
	err := b.db.Model(&ProjectRecord{}).
		Order("updated_at DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return ids, nil
}
