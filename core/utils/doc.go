// Package utils provides loose type conversion helpers for rows decoded from
// the legacy export, where the same column may arrive as a JSON number,
// a string, or a boolean depending on the export tool version.
package utils
