// Package ledger keeps a history of import runs in the database.
//
// Each run stores its per-phase counts and the issues it reported so that
// operators can review what a previous import did. When no database is
// configured the Nop ledger is used and nothing is kept.
package ledger
