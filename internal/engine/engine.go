// Package engine discovers, orders, analyzes, and extracts Windows backup
// ZIP archives. A run moves through Scanning, Sorting, then either
// Analyzing or Extracting, and processes the discovered archive set
// exactly once.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/bamsammich/zipback/internal/event"
	"github.com/bamsammich/zipback/internal/natsort"
	"github.com/bamsammich/zipback/internal/stats"
)

// Config describes one run.
type Config struct {
	Source      string // directory to scan for .zip files (required)
	Dst         string // destination root (required unless AnalyzeOnly)
	AnalyzeOnly bool
	Sample      int  // histogram sample size (0 = DefaultSample)
	Digest      bool // record BLAKE3 digests of extracted files
	Events      chan<- event.Event
	Stats       *stats.Collector
}

// Result is the outcome of a run. Err is set only for fatal conditions
// (unusable source); every other failure is recorded in the error lists
// and counted on the collector.
type Result struct {
	Archives    []string // discovered archives in natural order
	Warnings    []ScanWarning
	Report      *Report // set in analyze mode
	ArchiveErrs []ArchiveError
	EntryErrs   []EntryError
	Stats       stats.Snapshot
	Err         error
}

// Run executes a run, blocking until complete.
func Run(ctx context.Context, cfg Config) Result {
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}

	emit(cfg.Events, event.Event{Type: event.ScanStarted, Path: cfg.Source})

	zips, warnings, err := FindArchives(cfg.Source)
	if err != nil {
		return Result{Err: err}
	}
	for _, w := range warnings {
		slog.Warn("scan warning", "path", w.Path, "error", w.Err)
	}

	slices.SortFunc(zips, natsort.Compare)
	collector.SetArchivesTotal(int64(len(zips)))
	emit(cfg.Events, event.Event{Type: event.ScanComplete, Total: len(zips)})

	slog.Debug("scan complete", "archives", len(zips), "warnings", len(warnings))

	if cfg.AnalyzeOnly {
		rep := Analyze(ctx, zips, cfg.Sample)
		// Totals feed extraction progress when a restore follows.
		collector.SetTotals(rep.Entries, rep.UncompressedBytes)
		return Result{
			Archives:    zips,
			Warnings:    warnings,
			Report:      &rep,
			ArchiveErrs: rep.Errors,
			Stats:       collector.Snapshot(),
		}
	}

	if cfg.Dst == "" {
		return Result{Err: fmt.Errorf("destination is required for extraction")}
	}
	if err := os.MkdirAll(cfg.Dst, 0o755); err != nil {
		return Result{Err: fmt.Errorf("create destination: %w", err)}
	}

	ext := &extractor{
		dst:    cfg.Dst,
		digest: cfg.Digest,
		events: cfg.Events,
		stats:  collector,
	}
	ext.run(ctx, zips)

	return Result{
		Archives:    zips,
		Warnings:    warnings,
		ArchiveErrs: ext.archiveErrs,
		EntryErrs:   ext.entryErrs,
		Stats:       collector.Snapshot(),
	}
}

func emit(ch chan<- event.Event, ev event.Event) {
	if ch == nil {
		return
	}
	ev.Timestamp = time.Now()
	select {
	case ch <- ev:
	default:
	}
}
