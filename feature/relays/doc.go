// Package relays assembles relay teams from the legacy relay and relay roster
// tables and plans their creation.
//
// A relay team is identified by program number, team and letter. When the
// service can list the relay teams of a meet, existing ones are skipped.
package relays
