package gormstorage_test

import (
	"github.com/trhaseeb/geo-report/internal/storage"
	gormstorage "github.com/trhaseeb/geo-report/internal/storage/gorm"
)

// Compile-time interface check. This lives in an external test package so it
// can import internal/storage without creating an import cycle
// (internal/storage's factory imports this package).
var _ storage.Backend = (*gormstorage.Backend)(nil)
