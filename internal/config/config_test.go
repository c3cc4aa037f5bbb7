package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"validation": { "strict": true },
		"scheduler": { "maxConcurrent": 100 },
		"catalog": { "type": "sqlite", "path": "./templates.db" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine.cfg.json"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, true, viper.GetBool("validation.strict"))
	assert.Equal(t, 100, viper.GetInt("scheduler.maxConcurrent"))
	assert.Equal(t, CatalogConfig{Type: "sqlite", Path: "./templates.db"}, Catalog())
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine.cfg.json"), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./enginelogs", viper.GetString("logsDir"))
	assert.Equal(t, true, viper.GetBool("validation.enforceDnd"))
	assert.Equal(t, false, viper.GetBool("validation.strict"))
	assert.Equal(t, false, viper.GetBool("validation.allowCustomConditions"))
	assert.Equal(t, 50, viper.GetInt("scheduler.maxConcurrent"))
	assert.Equal(t, 16, viper.GetInt("scheduler.frameIntervalMs"))
	assert.Equal(t, 4096, viper.GetInt("events.capacity"))
	assert.Equal(t, "memory", viper.GetString("catalog.type"))
	assert.Equal(t, "", viper.GetString("catalog.path"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "mapforge", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "mapforge-metrics", viper.GetString("influx.org"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestAccessors(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("logLevel", "warn")
	viper.Set("scheduler.maxConcurrent", 25)
	viper.Set("validation.strict", true)

	assert.Equal(t, "warn", GetString("logLevel"))
	assert.Equal(t, 25, GetInt("scheduler.maxConcurrent"))
	assert.Equal(t, true, GetBool("validation.strict"))
}
