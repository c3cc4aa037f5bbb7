package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// CatalogConfig holds template catalog storage settings.
type CatalogConfig struct {
	Type string `json:"type" mapstructure:"type"` // memory | sqlite | postgres
	Path string `json:"path" mapstructure:"path"` // sqlite file path, empty = in-memory
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./enginelogs")

	viper.SetDefault("validation.enforceDnd", true)
	viper.SetDefault("validation.strict", false)
	viper.SetDefault("validation.allowCustomConditions", false)

	viper.SetDefault("scheduler.maxConcurrent", 50)
	viper.SetDefault("scheduler.frameIntervalMs", 16)

	viper.SetDefault("events.capacity", 4096)

	viper.SetDefault("catalog.type", "memory")
	viper.SetDefault("catalog.path", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "mapforge")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "mapforge-metrics")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.logs.endpoint", "localhost:4318")

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.serverUrl", "http://localhost:5000")
	viper.SetDefault("api.apiKey", "")

	viper.SetDefault("exportsDir", "./exports")

	viper.SetConfigName("engine.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Catalog returns the template catalog settings.
func Catalog() CatalogConfig {
	return CatalogConfig{
		Type: viper.GetString("catalog.type"),
		Path: viper.GetString("catalog.path"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
