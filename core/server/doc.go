// Package server holds the import API server configuration.
//
// The `start` command owns the Fiber application; this package only defines
// the port and the API key that protects every route.
package server
