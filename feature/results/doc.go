// Package results plans result uploads for individual entries.
//
// A result has an optional final time and any number of secondary readings
// tagged PAD or BACKUP1 to BACKUP3. A time of zero is never a reading, and a
// result with no readings at all is not sent.
package results
