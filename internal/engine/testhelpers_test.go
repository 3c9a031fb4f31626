package engine

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// zipEntry describes one entry for writeZip.
type zipEntry struct {
	name string
	body string
	dir  bool
}

// writeZip creates a ZIP file at path with the given entries.
func writeZip(t *testing.T, path string, entries []zipEntry) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		if e.dir {
			_, err := zw.Create(e.name + "/")
			require.NoError(t, err)
			continue
		}
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

// writeCorruptZip creates a file that is not a valid ZIP archive.
func writeCorruptZip(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04 not really a zip"), 0o644))
}

// listTree returns every path under root, for asserting a tree unchanged.
func listTree(t *testing.T, root string) []string {
	t.Helper()

	var paths []string
	err := filepath.WalkDir(root, func(path string, _ os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)
	return paths
}
