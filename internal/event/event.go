// Package event defines the progress events the engine emits while
// scanning, analyzing, and extracting archives.
package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ScanComplete
	ArchiveStarted
	ArchiveCompleted
	ArchiveFailed
	EntryExtracted
	EntryFailed
	EntrySkipped
	TraversalRejected
)

var typeNames = [...]string{
	ScanStarted:       "ScanStarted",
	ScanComplete:      "ScanComplete",
	ArchiveStarted:    "ArchiveStarted",
	ArchiveCompleted:  "ArchiveCompleted",
	ArchiveFailed:     "ArchiveFailed",
	EntryExtracted:    "EntryExtracted",
	EntryFailed:       "EntryFailed",
	EntrySkipped:      "EntrySkipped",
	TraversalRejected: "TraversalRejected",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Archive   string // archive file path
	Path      string // normalized entry path
	Size      int64  // bytes written for the entry
	Files     int64  // files extracted (ArchiveCompleted)
	Index     int    // 1-based archive position
	Total     int    // total archives (ScanComplete, Archive*)
	Digest    string // hex BLAKE3 digest when digest recording is on
	Error     error
}
