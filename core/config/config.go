package config

import (
	"reflect"
	"strings"

	"meet-importer/core/database"
	"meet-importer/core/logger"
	"meet-importer/core/meetservice"
	"meet-importer/core/server"
	"meet-importer/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the import API server.
	Server server.Config `mapstructure:"server"`
	// Remote holds configuration for the remote meet-management service.
	Remote meetservice.Config `mapstructure:"remote"`
	// Legacy holds configuration for reading the legacy meet database.
	Legacy LegacyConfig `mapstructure:"legacy"`
	// Import holds the run policy for the synchronization engine.
	Import ImportConfig `mapstructure:"import"`
	// Storage holds configuration for the snapshot archive (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the import ledger database.
	Database database.Config `mapstructure:"database"`
}

// LegacyConfig holds settings for the legacy export collaborator.
type LegacyConfig struct {
	// ExportBinary is the executable that dumps one table as JSON lines.
	ExportBinary string `mapstructure:"export_binary" default:"mdb-json"`
	// WorkDir is where database files are extracted from zip archives.
	WorkDir string `mapstructure:"work_dir" default:"."`
}

// ImportConfig controls abort-vs-continue decisions of an import run.
type ImportConfig struct {
	// DryRun plans every phase against a mirror of the remote state without writing.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// ContinueOnBatchFailure keeps going when an entries, results or relays batch is rejected.
	ContinueOnBatchFailure bool `mapstructure:"continue_on_batch_failure" default:"false"`
	// BlockOnConflict aborts the run when a team name matches with a different abbreviation.
	BlockOnConflict bool `mapstructure:"block_on_conflict" default:"false"`
	// CacheTTLSeconds keeps loaded legacy sources in memory for the API server.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. REMOTE_BASE_URL -> remote.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
