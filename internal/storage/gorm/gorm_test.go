package gormstorage

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trhaseeb/geo-report/internal/database"
	"github.com/trhaseeb/geo-report/internal/feature"
	"github.com/trhaseeb/geo-report/internal/logging"
	"github.com/trhaseeb/geo-report/internal/project"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	// the in-memory DSN uses a shared cache, so each test gets its own file
	db, err := database.GetSqliteDBStandalone(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	b := New(Dependencies{
		DB:         db,
		LogManager: logging.NewSlogManager(),
	})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestInit_NoDatabase(t *testing.T) {
	b := New(Dependencies{LogManager: logging.NewSlogManager()})
	assert.Error(t, b.Init())
}

func TestSaveLoad(t *testing.T) {
	b := newTestBackend(t)

	doc := project.NewDocument("Harbor Survey", "T. Haseeb", "satellite")
	doc.Rotation = 135
	doc.Features = []feature.Feature{
		{ID: "m1", Kind: feature.KindPoint, Positions: []feature.Position{{X: 3, Y: 4}}},
	}

	require.NoError(t, b.Save(doc))

	loaded, err := b.Load(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, loaded.ID)
	assert.Equal(t, "Harbor Survey", loaded.Title)
	assert.Equal(t, 135, loaded.Rotation)
	require.Len(t, loaded.Features, 1)
}

func TestSave_UpsertsByID(t *testing.T) {
	b := newTestBackend(t)

	doc := project.NewDocument("Draft", "", "osm")
	require.NoError(t, b.Save(doc))

	doc.Title = "Final"
	doc.Rotation = 90
	require.NoError(t, b.Save(doc))

	loaded, err := b.Load(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", loaded.Title)
	assert.Equal(t, 90, loaded.Rotation)

	ids, err := b.List()
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestLoad_NotFound(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.Load("missing-id")
	assert.Error(t, err)
}

func TestClose_DumpsFallbackToDisk(t *testing.T) {
	mgr := database.NewManager(zerolog.Nop())
	mgr.SqliteFilePath = filepath.Join(t.TempDir(), "fallback.db")

	db, err := mgr.GetSqliteDB("")
	require.NoError(t, err)
	mgr.DB = db
	mgr.ShouldSaveLocal = true

	b := New(Dependencies{DB: db, Manager: mgr, LogManager: logging.NewSlogManager()})
	require.NoError(t, b.Init())

	doc := project.NewDocument("Field Notes", "T. Haseeb", "osm")
	doc.Rotation = 60
	require.NoError(t, b.Save(doc))
	require.NoError(t, b.Close())

	// the in-memory DB must have landed on disk
	dumped, err := database.GetSqliteDBStandalone(mgr.SqliteFilePath)
	require.NoError(t, err)
	b2 := New(Dependencies{DB: dumped, LogManager: logging.NewSlogManager()})
	t.Cleanup(func() { _ = b2.Close() })

	loaded, err := b2.Load(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Field Notes", loaded.Title)
	assert.Equal(t, 60, loaded.Rotation)
}

func TestList_Empty(t *testing.T) {
	b := newTestBackend(t)
	ids, err := b.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}
