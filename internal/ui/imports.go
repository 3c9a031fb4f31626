package ui

import "github.com/bamsammich/zipback/internal/event"

// Event aliases the engine event type for presenter signatures.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanStarted       = event.ScanStarted
	ScanComplete      = event.ScanComplete
	ArchiveStarted    = event.ArchiveStarted
	ArchiveCompleted  = event.ArchiveCompleted
	ArchiveFailed     = event.ArchiveFailed
	EntryExtracted    = event.EntryExtracted
	EntryFailed       = event.EntryFailed
	EntrySkipped      = event.EntrySkipped
	TraversalRejected = event.TraversalRejected
)
