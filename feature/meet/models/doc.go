// Package models defines the canonical meet, event, team and athlete types
// that legacy rows are translated into before reconciliation.
package models
