package legacy

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"meet-importer/core/errors"
)

// Legacy tables read by an import.
const (
	TableMeet       = "meet"
	TableEvent      = "event"
	TableTeam       = "team"
	TableAthlete    = "athlete"
	TableEntry      = "entry"
	TableRelay      = "relay"
	TableRelayNames = "relaynames"
)

// Tables lists every table Load exports.
var Tables = []string{TableMeet, TableEvent, TableTeam, TableAthlete, TableEntry, TableRelay, TableRelayNames}

// Exporter dumps one legacy table as JSON, one object per line.
type Exporter interface {
	Export(ctx context.Context, table string) ([]byte, error)
}

// MDBExporter runs an external export utility such as mdb-json against a database file.
type MDBExporter struct {
	// Binary is the export executable, invoked as "<Binary> <File> <table>".
	Binary string
	// File is the path of the .mdb database.
	File string
}

// Export implements Exporter.
func (e *MDBExporter) Export(ctx context.Context, table string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, e.Binary, e.File, table)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &errors.ProcessError{
			Operation: "export table " + table,
			Command:   e.Binary,
			Output:    strings.TrimSpace(stderr.String()),
			Err:       err,
		}
	}
	return stdout.Bytes(), nil
}

// OpenSource returns the path of the database behind path. A .mdb path is used
// as is; from a .zip archive the first .mdb member is extracted into workDir.
func OpenSource(path, workDir string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mdb":
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("failed to open legacy database: %w", err)
		}
		return path, nil
	case ".zip":
		return extractDatabase(path, workDir)
	default:
		return "", fmt.Errorf("unsupported legacy source %q: expected .mdb or .zip", path)
	}
}

func extractDatabase(archive, workDir string) (string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".mdb") {
			continue
		}

		// Only the base name is kept so members cannot escape workDir
		target := filepath.Join(workDir, filepath.Base(f.Name))
		if err := extractFile(f, target); err != nil {
			return "", err
		}
		return target, nil
	}

	return "", fmt.Errorf("archive %s contains no .mdb database", archive)
}

func extractFile(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s from archive: %w", f.Name, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return dst.Close()
}

// TableSet is an Exporter over tables that were exported earlier.
// Missing tables export as empty.
type TableSet map[string][]byte

// Export implements Exporter.
func (t TableSet) Export(_ context.Context, table string) ([]byte, error) {
	return t[table], nil
}
