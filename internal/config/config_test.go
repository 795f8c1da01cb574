package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "studio_admin", cfg.Database.Name)
	assert.Equal(t, 15*time.Minute, cfg.Export.URLExpiry)
	assert.Equal(t, "exports", cfg.Export.Prefix)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`server:
  address: ":9000"
database:
  driver: memory
s3:
  bucket_name: studio-exports
export:
  url_expiry: 1h
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("SERVER_ADDRESS", ":9100")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Address, "env wins over file")
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, time.Hour, cfg.Export.URLExpiry)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "firestore")
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
