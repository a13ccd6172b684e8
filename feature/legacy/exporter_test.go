package legacy

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"meet-importer/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMDBExporter(t *testing.T) {
	t.Run("Passes file and table", func(t *testing.T) {
		e := &MDBExporter{Binary: "echo", File: "meet.mdb"}

		out, err := e.Export(context.Background(), TableEntry)
		require.NoError(t, err)
		assert.Equal(t, "meet.mdb entry\n", string(out))
	})

	t.Run("Failure is a process error", func(t *testing.T) {
		e := &MDBExporter{Binary: "false", File: "meet.mdb"}

		_, err := e.Export(context.Background(), TableMeet)
		var procErr *errors.ProcessError
		require.True(t, errors.As(err, &procErr))
		assert.Equal(t, "export table meet", procErr.Operation)
	})
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestOpenSource(t *testing.T) {
	dir := t.TempDir()

	t.Run("Database file", func(t *testing.T) {
		path := filepath.Join(dir, "meet.mdb")
		require.NoError(t, os.WriteFile(path, []byte("db"), 0o644))

		got, err := OpenSource(path, dir)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("Missing database file", func(t *testing.T) {
		_, err := OpenSource(filepath.Join(dir, "missing.mdb"), dir)
		assert.Error(t, err)
	})

	t.Run("Zip archive", func(t *testing.T) {
		archive := filepath.Join(dir, "backup.zip")
		writeZip(t, archive, map[string]string{
			"readme.txt":          "ignore me",
			"nested/Meet Mgr.mdb": "database",
		})
		workDir := filepath.Join(dir, "work")

		got, err := OpenSource(archive, workDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(workDir, "Meet Mgr.mdb"), got)

		content, err := os.ReadFile(got)
		require.NoError(t, err)
		assert.Equal(t, "database", string(content))
	})

	t.Run("Zip without database", func(t *testing.T) {
		archive := filepath.Join(dir, "empty.zip")
		writeZip(t, archive, map[string]string{"readme.txt": "x"})

		_, err := OpenSource(archive, dir)
		assert.ErrorContains(t, err, "contains no .mdb database")
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		_, err := OpenSource("meet.csv", dir)
		assert.ErrorContains(t, err, "unsupported legacy source")
	})
}
