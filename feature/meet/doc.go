// Package meet translates the legacy meet setup into the canonical meet and
// plans its creation on the remote service.
//
// Event classification, discipline, distance and leg count are derived here.
// Codes without a canonical counterpart are kept as unmapped values and
// reported on the plan rather than rejected.
package meet
