// Package meetservice is the client side of the remote meet-management service.
//
// Service describes what the importer needs from the service: meet lookup and
// creation, team and athlete rosters, entries, results and relay teams.
// HTTPClient implements it over the JSON API, where every response body is
// wrapped as {"data": ...}. Reads are retried with exponential backoff on
// transport errors, 429 and 5xx responses. Writes are never retried.
//
// Memory is an in-memory Service used by tests and by dry runs: Mirror copies
// the remote state for one meet so a whole import can be simulated against it.
package meetservice
