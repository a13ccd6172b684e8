// Package config provides configuration management for the meet importer.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults live next to each field in a
// `default` struct tag and are registered by reflection.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: import API port and API key
//   - Remote: meet-management service base URL, timeouts and read retries
//   - Legacy: export tool binary and extraction directory
//   - Import: run policy (dry run, batch failure handling, conflict blocking)
//   - Storage: S3/MinIO settings for the legacy snapshot archive
//   - Database: import ledger connection
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Remote.BaseURL)
package config
