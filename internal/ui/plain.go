package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bamsammich/zipback/internal/stats"
)

// plainPresenter prints one line per processed archive to stdout and, on a
// TTY, periodic throughput lines to stderr.
type plainPresenter struct {
	w          io.Writer
	errW       io.Writer
	stats      stats.ReadTicker
	verbose    bool
	noProgress bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var sinceProgress int
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.stats.Tick()
			sinceProgress++
			if sinceProgress >= 5 && !p.noProgress {
				sinceProgress = 0
				p.printProgress()
			}
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	name := filepath.Base(ev.Archive)
	switch ev.Type {
	case ArchiveCompleted:
		fmt.Fprintf(p.w, "[%d/%d] %s  %s files\n", ev.Index, ev.Total, name, FormatCount(ev.Files))
	case ArchiveFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "[%d/%d] %s  ERROR: %s\n", ev.Index, ev.Total, name, errMsg)
	case EntryFailed:
		if p.verbose {
			fmt.Fprintf(p.w, "  failed: %s: %v\n", ev.Path, ev.Error)
		}
	case TraversalRejected:
		if p.verbose {
			fmt.Fprintf(p.w, "  rejected: %s\n", ev.Path)
		}
	case EntryExtracted:
		if p.verbose && ev.Digest != "" {
			fmt.Fprintf(p.w, "  %s  %s  %s\n", ev.Path, FormatBytes(ev.Size), ev.Digest[:16])
		}
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	speed := p.stats.RollingSpeed(10)
	if snap.BytesTotal > 0 {
		pct := float64(snap.BytesWritten) / float64(snap.BytesTotal) * 100
		fmt.Fprintf(p.errW, "progress: %.0f%% %s/%s %s/%s files %s\n",
			pct,
			FormatBytes(snap.BytesWritten), FormatBytes(snap.BytesTotal),
			FormatCount(snap.FilesExtracted), FormatCount(snap.FilesTotal),
			FormatRate(speed),
		)
	} else {
		fmt.Fprintf(p.errW, "progress: %s written %s files %s\n",
			FormatBytes(snap.BytesWritten),
			FormatCount(snap.FilesExtracted),
			FormatRate(speed),
		)
	}
}

func (p *plainPresenter) Summary() string {
	return completionSummary(p.stats.Snapshot())
}
