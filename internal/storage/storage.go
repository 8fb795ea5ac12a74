// internal/storage/storage.go
package storage

import "github.com/trhaseeb/geo-report/internal/project"

// Backend is the interface all project storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Document persistence
	Save(doc *project.Document) error
	Load(ref string) (*project.Document, error)
	List() ([]string, error)
}

// Uploadable is an optional interface for storage backends that produce
// files suitable for upload to the report server.
type Uploadable interface {
	GetExportedFilePath() string
}
