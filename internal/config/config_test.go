package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "uploads", cfg.Server.UploadDir)
	assert.Equal(t, "qdrant", cfg.Storage.Type)
	assert.Equal(t, "localhost", cfg.Storage.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Storage.Qdrant.Port)
	assert.Equal(t, 30*time.Second, cfg.EmbedTimeout())
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: "127.0.0.1:9000"
storage:
  type: memory
embedder:
  timeout_secs: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, 5*time.Second, cfg.EmbedTimeout())
	// Unset fields still get defaults.
	assert.Equal(t, "localhost", cfg.Storage.Qdrant.Host)
	assert.Equal(t, int64(32), cfg.Server.MaxUploadMB)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
