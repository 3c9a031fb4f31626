package ui

import "github.com/bamsammich/zipback/internal/stats"

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	stats stats.Reader
}

func (p *quietPresenter) Run(events <-chan Event) error {
	for range events {
		// Counters live on the collector; presenters only read them.
	}
	return nil
}

// Summary stays empty on a clean run. Failures are the one thing quiet
// mode still reports.
func (p *quietPresenter) Summary() string {
	snap := p.stats.Snapshot()
	if snap.EntryErrors == 0 && snap.ArchivesFailed == 0 {
		return ""
	}
	return completionSummary(snap)
}
