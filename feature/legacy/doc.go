// Package legacy reads a legacy meet-manager database.
//
// Tables are dumped through an Exporter (normally the mdb-json utility, one
// JSON object per line) and parsed into typed rows. Store indexes events,
// teams and athletes by the numeric keys other tables refer to, and groups
// relay legs by relay team. A Store is immutable after Load.
//
// Dates in the legacy database carry two-digit years; InferBirthDate applies
// the century correction used for athletes' birth dates.
package legacy
