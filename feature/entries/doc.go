// Package entries plans the creation of individual entries.
//
// An entry is identified by program number and athlete; entries already
// present remotely are never created again.
package entries
