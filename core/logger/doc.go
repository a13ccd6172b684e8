// Package logger provides a structured logging facility based on Zap.
//
// Debug level selects zap's development configuration; every other level
// uses the production configuration. The console format is the default for
// the CLI, json is meant for the API server behind a log collector.
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches
// it to the log entry so all logs of one API request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Import started", zap.String("source", path))
package logger
