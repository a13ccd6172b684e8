// Package snapshot archives the raw legacy export of each import run to
// object storage and replays it later as a legacy exporter.
//
// Objects are laid out as snapshots/<run id>/<table>.jsonl in the
// configured bucket.
package snapshot
