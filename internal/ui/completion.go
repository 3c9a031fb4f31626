package ui

import (
	"fmt"

	"github.com/bamsammich/zipback/internal/stats"
)

// completionSummary builds a final summary line from a snapshot.
// Format: done ✓  archives 5/5  files 48,917  size 2.1 GiB  time 3m 17s  errors 0  rejected 0
func completionSummary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.EntryErrors > 0 || snap.ArchivesFailed > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  archives %d/%d  files %s  size %s  time %s",
		icon,
		snap.ArchivesExtracted, snap.ArchivesTotal,
		FormatCount(snap.FilesExtracted),
		FormatBytes(snap.BytesWritten),
		FormatDuration(snap.Elapsed),
	)

	if snap.FilesHashed > 0 {
		base += fmt.Sprintf("  hashed %s", FormatCount(snap.FilesHashed))
	}

	base += fmt.Sprintf("  errors %d  rejected %d",
		snap.EntryErrors+snap.ArchivesFailed, snap.TraversalRejected)

	return base
}
