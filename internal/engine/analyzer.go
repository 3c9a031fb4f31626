package engine

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path"
	"strings"
)

// ArchiveError records an archive that failed to open or list.
type ArchiveError struct {
	Archive string
	Err     error
}

func (e ArchiveError) String() string {
	return fmt.Sprintf("%s: %v", e.Archive, e.Err)
}

// Report summarizes a read-only pass over an ordered archive set.
type Report struct {
	Archives          int
	Entries           int64
	CompressedBytes   int64 // archive file sizes on disk
	UncompressedBytes int64
	Extensions        map[string]int64
	SampledFrom       string // archive that contributed the histogram
	SampledEntries    int
	Errors            []ArchiveError
}

// Analyze lists each archive in order without extracting anything. Entry
// counts and sizes accumulate across all archives; the extension histogram
// samples up to sample entries from the first archive that opens
// successfully. A bad archive is recorded and analysis continues.
func Analyze(ctx context.Context, archives []string, sample int) Report {
	rep := Report{
		Archives:   len(archives),
		Extensions: make(map[string]int64),
	}
	if sample <= 0 {
		sample = DefaultSample
	}

	for _, archive := range archives {
		if ctx.Err() != nil {
			break
		}

		if info, err := os.Stat(archive); err == nil {
			rep.CompressedBytes += info.Size()
		}

		r, err := zip.OpenReader(archive)
		if err != nil {
			rep.Errors = append(rep.Errors, ArchiveError{Archive: archive, Err: err})
			continue
		}

		rep.Entries += int64(len(r.File))
		for _, f := range r.File {
			rep.UncompressedBytes += int64(f.UncompressedSize64) //nolint:gosec // G115: zip sizes fit int64
		}

		if rep.SampledFrom == "" {
			rep.SampledFrom = archive
			rep.SampledEntries = sampleExtensions(r.File, sample, rep.Extensions)
		}

		r.Close()
	}

	return rep
}

// DefaultSample is the number of entries inspected for the extension
// histogram when no sample size is configured.
const DefaultSample = 512

func sampleExtensions(files []*zip.File, limit int, hist map[string]int64) int {
	sampled := 0
	for _, f := range files {
		if sampled >= limit {
			break
		}
		if f.FileInfo().IsDir() {
			continue
		}
		sampled++
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(path.Base(f.Name)), "."))
		if ext == "" {
			continue
		}
		hist[ext]++
	}
	return sampled
}
