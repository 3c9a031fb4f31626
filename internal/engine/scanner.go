package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ScanWarning records a directory skipped during archive discovery.
type ScanWarning struct {
	Path string
	Err  error
}

func (w ScanWarning) String() string {
	if w.Err == nil {
		return w.Path
	}
	return fmt.Sprintf("%s: %v", w.Path, w.Err)
}

// devIno uniquely identifies a directory for symlink-cycle detection.
type devIno struct {
	dev uint64
	ino uint64
}

// FindArchives walks root recursively and returns the absolute paths of
// all files whose name ends in ".zip" (case-insensitive), in directory
// traversal order. Symlinked directories are followed, but a directory
// already on the current traversal stack is skipped with a warning so
// symlink cycles cannot loop the scan. Unreadable subdirectories are
// skipped with a warning. A missing or non-directory root is fatal.
func FindArchives(root string) ([]string, []ScanWarning, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("source %s is not a directory", abs)
	}

	s := &scanner{stack: make(map[devIno]string)}
	s.walk(abs)
	return s.zips, s.warnings, nil
}

type scanner struct {
	zips     []string
	warnings []ScanWarning
	stack    map[devIno]string // directories on the current traversal path
}

func (s *scanner) walk(dir string) {
	info, err := os.Stat(dir)
	if err != nil {
		s.warn(dir, err)
		return
	}

	if id, ok := identityOf(info); ok {
		if prev, on := s.stack[id]; on {
			s.warn(dir, fmt.Errorf("symlink cycle back to %s", prev))
			return
		}
		s.stack[id] = dir
		defer delete(s.stack, id)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.warn(dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil && target.IsDir() {
				isDir = true
			}
		}

		if isDir {
			s.walk(path)
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".zip") {
			s.zips = append(s.zips, path)
		}
	}
}

func (s *scanner) warn(path string, err error) {
	s.warnings = append(s.warnings, ScanWarning{Path: path, Err: err})
}

// identityOf extracts the device+inode pair that canonically identifies a
// directory, regardless of the path it was reached by.
func identityOf(info os.FileInfo) (devIno, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return devIno{}, false
	}
	//nolint:unconvert // Dev is int32 on some platforms
	return devIno{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}
