// Package importer orchestrates an import run.
//
// A run loads the legacy tables, then executes the meet, teams, entries,
// results and relays phases in that order. Every phase plans against the
// current remote state and applies its plan before the next phase starts, so
// later phases resolve records created earlier in the same run. Dry runs
// execute against an in-memory mirror of the remote service.
//
// The Policy decides which failures abort the run. Meet and roster write
// failures and failed reads always abort.
package importer
