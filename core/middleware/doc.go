// Package middleware groups the HTTP middleware of the API server.
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: tags every request with a ray id, stored in the fiber locals
//     and echoed in the X-Ray-ID response header.
//
// Both are registered globally in the start command, rayid first.
package middleware
