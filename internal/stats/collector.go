// Package stats tracks extraction counters shared between the engine and
// the presenter goroutine.
package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Collector tracks run statistics using lock-free atomic counters.
type Collector struct {
	archivesExtracted atomic.Int64
	archivesFailed    atomic.Int64
	filesExtracted    atomic.Int64
	filesHashed       atomic.Int64
	entryErrors       atomic.Int64
	traversalRejected atomic.Int64
	markersSkipped    atomic.Int64
	bytesWritten      atomic.Int64
	bytesTotal        atomic.Int64
	filesTotal        atomic.Int64
	archivesTotal     atomic.Int64
	startTime         time.Time

	// Ring buffer, written only by the presenter's Tick(), never the engine.
	mu         sync.Mutex
	throughput [ringSize]int64 // bytes delta per second
	ringIdx    int
	ringCount  int
	lastBytes  int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records the totals known after analysis (entry count and
// uncompressed bytes across all archives).
func (c *Collector) SetTotals(files, bytes int64) {
	c.filesTotal.Store(files)
	c.bytesTotal.Store(bytes)
}

// SetArchivesTotal records how many archives the scan discovered.
func (c *Collector) SetArchivesTotal(n int64) { c.archivesTotal.Store(n) }

func (c *Collector) AddArchivesExtracted(n int64) { c.archivesExtracted.Add(n) }
func (c *Collector) AddArchivesFailed(n int64)    { c.archivesFailed.Add(n) }
func (c *Collector) AddFilesExtracted(n int64)    { c.filesExtracted.Add(n) }
func (c *Collector) AddFilesHashed(n int64)       { c.filesHashed.Add(n) }
func (c *Collector) AddEntryErrors(n int64)       { c.entryErrors.Add(n) }
func (c *Collector) AddTraversalRejected(n int64) { c.traversalRejected.Add(n) }
func (c *Collector) AddMarkersSkipped(n int64)    { c.markersSkipped.Add(n) }
func (c *Collector) AddBytesWritten(n int64)      { c.bytesWritten.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	ArchivesExtracted int64
	ArchivesFailed    int64
	ArchivesTotal     int64
	FilesExtracted    int64
	FilesHashed       int64
	EntryErrors       int64
	TraversalRejected int64
	MarkersSkipped    int64
	BytesWritten      int64
	BytesTotal        int64
	FilesTotal        int64
	Elapsed           time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		ArchivesExtracted: c.archivesExtracted.Load(),
		ArchivesFailed:    c.archivesFailed.Load(),
		ArchivesTotal:     c.archivesTotal.Load(),
		FilesExtracted:    c.filesExtracted.Load(),
		FilesHashed:       c.filesHashed.Load(),
		EntryErrors:       c.entryErrors.Load(),
		TraversalRejected: c.traversalRejected.Load(),
		MarkersSkipped:    c.markersSkipped.Load(),
		BytesWritten:      c.bytesWritten.Load(),
		BytesTotal:        c.bytesTotal.Load(),
		FilesTotal:        c.filesTotal.Load(),
		Elapsed:           c.Elapsed(),
	}
}

// Tick snapshots the bytes-written delta into the ring buffer. Called once
// per second by the presenter.
func (c *Collector) Tick() {
	current := c.bytesWritten.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = current - c.lastBytes
	c.lastBytes = current
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := seconds
	if count > c.ringCount {
		count = c.ringCount
	}
	if count == 0 {
		return 0
	}
	var sum int64
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.throughput[idx]
	}
	return float64(sum) / float64(count)
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Reader is the read-only view presenters use.
type Reader interface {
	Snapshot() Snapshot
	Elapsed() time.Duration
}

// ReadTicker extends Reader with the sampling hooks the plain presenter
// drives from its ticker.
type ReadTicker interface {
	Reader
	Tick()
	RollingSpeed(seconds int) float64
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"archives=%d/%d extracted=%d errors=%d rejected=%d skipped=%d bytes=%d",
		s.ArchivesExtracted, s.ArchivesTotal, s.FilesExtracted,
		s.EntryErrors, s.TraversalRejected, s.MarkersSkipped, s.BytesWritten,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
