package filestorage_test

import (
	"github.com/trhaseeb/geo-report/internal/storage"
	filestorage "github.com/trhaseeb/geo-report/internal/storage/file"
)

// Compile-time interface checks. These live in an external test package so
// they can import internal/storage without creating an import cycle
// (internal/storage's factory imports this package).
var (
	_ storage.Backend    = (*filestorage.Backend)(nil)
	_ storage.Uploadable = (*filestorage.Backend)(nil)
)
