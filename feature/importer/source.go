package importer

import (
	"fmt"
	"os"
	"strings"

	"meet-importer/feature/legacy"
	"meet-importer/feature/snapshot"
)

// SnapshotPrefix marks a source that replays an archived run, as in "snapshot:<run id>".
const SnapshotPrefix = "snapshot:"

// Opener turns a source reference into a legacy exporter.
type Opener interface {
	Open(source string) (legacy.Exporter, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(source string) (legacy.Exporter, error)

// Open implements Opener.
func (f OpenerFunc) Open(source string) (legacy.Exporter, error) {
	return f(source)
}

// Versioner is implemented by openers that can tell when a source changed.
// Loaded sources are only cached for openers that implement it.
type Versioner interface {
	Version(source string) (string, error)
}

// Sources opens legacy database files and archived snapshots.
type Sources struct {
	// Binary is the table export utility.
	Binary string
	// WorkDir receives databases extracted from zip archives.
	WorkDir string
	// Archive resolves snapshot sources. Nil disables them.
	Archive *snapshot.Archive
}

// Open implements Opener.
func (s Sources) Open(source string) (legacy.Exporter, error) {
	if id, ok := strings.CutPrefix(source, SnapshotPrefix); ok {
		if s.Archive == nil {
			return nil, fmt.Errorf("cannot replay snapshot %s: snapshot archive is disabled", id)
		}
		return s.Archive.Exporter(id), nil
	}

	file, err := legacy.OpenSource(source, s.WorkDir)
	if err != nil {
		return nil, err
	}
	return &legacy.MDBExporter{Binary: s.Binary, File: file}, nil
}

// Version implements Versioner. A database file is versioned by its size and
// modification time; archived snapshots never change.
func (s Sources) Version(source string) (string, error) {
	if isSnapshot(source) {
		return "archived", nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("failed to stat legacy source: %w", err)
	}
	return fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano()), nil
}

func isSnapshot(source string) bool {
	return strings.HasPrefix(source, SnapshotPrefix)
}
