// Package roster reconciles legacy teams and athletes with the remote roster.
//
// Teams are matched by abbreviation, then by exact name. A name-only match
// with a different abbreviation is reported as a conflict and treated as a
// match, so it never produces a duplicate team. Athletes are matched by member
// number within the matched team.
//
// Directory and Resolver are also used by the entries, results and relays
// phases to follow a legacy athlete to its remote identity.
package roster
