package storage

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trhaseeb/geo-report/internal/config"
	"github.com/trhaseeb/geo-report/internal/logging"
)

func TestNewBackend_File(t *testing.T) {
	b, err := NewBackend(config.StorageConfig{
		Type: "file",
		File: config.FileConfig{OutputDir: t.TempDir()},
	}, logging.NewSlogManager(), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NoError(t, b.Init())
	assert.NoError(t, b.Close())
}

func TestNewBackend_Sqlite(t *testing.T) {
	b, err := NewBackend(config.StorageConfig{
		Type:     "sqlite",
		Database: config.DatabaseConfig{SqlitePath: filepath.Join(t.TempDir(), "p.db")},
	}, logging.NewSlogManager(), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NoError(t, b.Init())
	assert.NoError(t, b.Close())
}

func TestNewBackend_PostgresFallsBackToSqlite(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("db.host", "127.0.0.1")
	viper.Set("db.port", "1") // nothing listens here

	b, err := NewBackend(config.StorageConfig{
		Type:     "postgres",
		Database: config.DatabaseConfig{SqlitePath: filepath.Join(t.TempDir(), "fallback.db")},
	}, logging.NewSlogManager(), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NoError(t, b.Init())
	assert.NoError(t, b.Close())
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := NewBackend(config.StorageConfig{Type: "carrier-pigeon"}, logging.NewSlogManager(), zerolog.Nop())
	assert.Error(t, err)
}
