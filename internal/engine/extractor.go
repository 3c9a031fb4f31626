package engine

import (
	"archive/zip"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/bamsammich/zipback/internal/event"
	"github.com/bamsammich/zipback/internal/platform"
	"github.com/bamsammich/zipback/internal/stats"
	"github.com/bamsammich/zipback/internal/zippath"
)

// EntryError records a single entry that failed to extract.
type EntryError struct {
	Archive string
	Entry   string
	Err     error
}

func (e EntryError) String() string {
	return fmt.Sprintf("%s: %s: %v", e.Archive, e.Entry, e.Err)
}

// extractor processes archives strictly sequentially: later archives in
// the sorted backup set are incremental layers, so order decides the final
// state of conflicting paths.
type extractor struct {
	dst    string
	digest bool
	events chan<- event.Event
	stats  *stats.Collector

	archiveErrs []ArchiveError
	entryErrs   []EntryError
}

func (e *extractor) run(ctx context.Context, archives []string) {
	defer tmpFiles.sweep()

	for i, archive := range archives {
		if ctx.Err() != nil {
			slog.Info("extraction aborted", "remaining", len(archives)-i)
			break
		}

		e.emit(event.Event{
			Type:    event.ArchiveStarted,
			Archive: archive,
			Index:   i + 1,
			Total:   len(archives),
		})

		files, err := e.extractArchive(ctx, archive)
		if err != nil {
			e.stats.AddArchivesFailed(1)
			e.archiveErrs = append(e.archiveErrs, ArchiveError{Archive: archive, Err: err})
			e.emit(event.Event{
				Type:    event.ArchiveFailed,
				Archive: archive,
				Index:   i + 1,
				Total:   len(archives),
				Error:   err,
			})
			continue
		}

		e.stats.AddArchivesExtracted(1)
		e.emit(event.Event{
			Type:    event.ArchiveCompleted,
			Archive: archive,
			Index:   i + 1,
			Total:   len(archives),
			Files:   files,
		})
	}
}

func (e *extractor) extractArchive(ctx context.Context, archive string) (int64, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	var files int64
	for _, f := range r.File {
		// An abort finishes the in-flight entry, never a partial file.
		if ctx.Err() != nil {
			break
		}
		if e.extractEntry(archive, f) {
			files++
		}
	}
	return files, nil
}

// extractEntry materializes one archive entry under the destination root.
// It reports whether a file was written; skips and failures are counted on
// the collector and never abort the archive.
func (e *extractor) extractEntry(archive string, f *zip.File) bool {
	if f.FileInfo().IsDir() {
		e.skipEntry(archive, f.Name)
		return false
	}

	name, err := zippath.Normalize(f.Name)
	if err != nil {
		if errors.Is(err, zippath.ErrTraversal) {
			e.stats.AddTraversalRejected(1)
			slog.Warn("entry rejected for safety", "archive", archive, "entry", f.Name)
			e.emit(event.Event{Type: event.TraversalRejected, Archive: archive, Path: f.Name})
			return false
		}
		e.failEntry(archive, f.Name, err)
		return false
	}
	if name == "" {
		// Drive root or all-noise path: nothing to write.
		e.skipEntry(archive, f.Name)
		return false
	}

	target := filepath.Join(e.dst, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		e.failEntry(archive, name, fmt.Errorf("mkdir: %w", err))
		return false
	}

	written, digest, err := e.writeEntry(f, target)
	if err != nil {
		e.failEntry(archive, name, err)
		return false
	}

	e.stats.AddFilesExtracted(1)
	e.stats.AddBytesWritten(written)
	if digest != "" {
		e.stats.AddFilesHashed(1)
		slog.Debug("extracted", "path", name, "size", written, "blake3", digest)
	}
	e.emit(event.Event{
		Type:    event.EntryExtracted,
		Archive: archive,
		Path:    name,
		Size:    written,
		Digest:  digest,
	})
	return true
}

// writeEntry streams the entry's decompressed bytes to a temporary file
// next to the target, then renames it into place. The rename makes
// last-write-wins across the archive sequence atomic per path.
func (e *extractor) writeEntry(f *zip.File, target string) (int64, string, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, "", fmt.Errorf("open entry: %w", err)
	}
	defer rc.Close()

	dir := filepath.Dir(target)
	base := filepath.Base(target)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.zipback-tmp", base, uuid.New().String()[:8]))

	tmpFiles.register(tmpPath)
	defer func() {
		tmpFiles.deregister(tmpPath)
		_ = os.Remove(tmpPath) // no-op if rename succeeded
	}()

	tmpFd, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, "", fmt.Errorf("create tmp: %w", err)
	}

	platform.Preallocate(tmpFd, int64(f.UncompressedSize64)) //nolint:gosec // G115: zip sizes fit int64

	var (
		w      io.Writer = tmpFd
		hasher *blake3.Hasher
	)
	if e.digest {
		hasher = blake3.New()
		w = io.MultiWriter(tmpFd, hasher)
	}

	written, err := io.Copy(w, rc)
	if err != nil {
		tmpFd.Close()
		return 0, "", fmt.Errorf("write: %w", err)
	}
	if err := tmpFd.Close(); err != nil {
		return 0, "", fmt.Errorf("close tmp: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return 0, "", fmt.Errorf("rename into place: %w", err)
	}

	var digest string
	if hasher != nil {
		digest = hex.EncodeToString(hasher.Sum(nil))
	}
	return written, digest, nil
}

func (e *extractor) skipEntry(archive, name string) {
	e.stats.AddMarkersSkipped(1)
	e.emit(event.Event{Type: event.EntrySkipped, Archive: archive, Path: name})
}

func (e *extractor) failEntry(archive, name string, err error) {
	e.stats.AddEntryErrors(1)
	e.entryErrs = append(e.entryErrs, EntryError{Archive: archive, Entry: name, Err: err})
	slog.Debug("entry failed", "archive", archive, "entry", name, "error", err)
	e.emit(event.Event{Type: event.EntryFailed, Archive: archive, Path: name, Error: err})
}

func (e *extractor) emit(ev event.Event) {
	emit(e.events, ev)
}
