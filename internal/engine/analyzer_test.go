package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Totals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.zip")
	b := filepath.Join(dir, "b.zip")

	writeZip(t, a, []zipEntry{
		{name: "C:/Users/x/doc.txt", body: "hello"},
		{name: "C:/Users/x/pic.jpg", body: "123456"},
	})
	writeZip(t, b, []zipEntry{
		{name: "C:/Users/x/more.txt", body: "world!"},
	})

	rep := Analyze(context.Background(), []string{a, b}, 0)

	assert.Equal(t, 2, rep.Archives)
	assert.Equal(t, int64(3), rep.Entries)
	assert.Equal(t, int64(5+6+6), rep.UncompressedBytes)
	assert.Positive(t, rep.CompressedBytes)
	assert.Empty(t, rep.Errors)
}

func TestAnalyze_HistogramFromFirstArchive(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.zip")
	b := filepath.Join(dir, "b.zip")

	writeZip(t, a, []zipEntry{
		{name: "x/one.txt", body: "1"},
		{name: "x/two.TXT", body: "2"},
		{name: "x/photo.jpg", body: "3"},
		{name: "x/noext", body: "4"},
		{name: "x/dir", dir: true},
	})
	writeZip(t, b, []zipEntry{
		{name: "y/other.pdf", body: "5"},
	})

	rep := Analyze(context.Background(), []string{a, b}, 0)

	assert.Equal(t, a, rep.SampledFrom)
	assert.Equal(t, 4, rep.SampledEntries)
	assert.Equal(t, int64(2), rep.Extensions["txt"])
	assert.Equal(t, int64(1), rep.Extensions["jpg"])
	// Second archive never contributes to the histogram.
	assert.Zero(t, rep.Extensions["pdf"])
}

func TestAnalyze_SampleLimit(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.zip")

	entries := make([]zipEntry, 10)
	for i := range entries {
		entries[i] = zipEntry{name: "x/" + string(rune('a'+i)) + ".log", body: "x"}
	}
	writeZip(t, a, entries)

	rep := Analyze(context.Background(), []string{a}, 3)
	assert.Equal(t, 3, rep.SampledEntries)
	assert.Equal(t, int64(3), rep.Extensions["log"])
}

func TestAnalyze_CorruptArchiveRecorded(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.zip")
	good := filepath.Join(dir, "good.zip")

	writeCorruptZip(t, bad)
	writeZip(t, good, []zipEntry{{name: "a.txt", body: "ok"}})

	rep := Analyze(context.Background(), []string{bad, good}, 0)

	require.Len(t, rep.Errors, 1)
	assert.Equal(t, bad, rep.Errors[0].Archive)
	// The first archive that opens successfully contributes the histogram.
	assert.Equal(t, good, rep.SampledFrom)
	assert.Equal(t, int64(1), rep.Entries)
}

func TestAnalyze_WritesNothing(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.zip")
	writeZip(t, a, []zipEntry{{name: "C:/x/file.txt", body: "data"}})

	before := listTree(t, dir)
	_ = Analyze(context.Background(), []string{a}, 0)
	assert.Equal(t, before, listTree(t, dir))
}
