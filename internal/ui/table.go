package ui

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bamsammich/zipback/internal/engine"
)

// histogramRows is how many extensions the analysis table shows.
const histogramRows = 10

// RenderReport renders an analysis report as a terminal table: summary
// counters followed by the sampled extension histogram, most common first.
func RenderReport(source string, rep *engine.Report) string {
	var b strings.Builder

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Windows Backup Analyzer")
	tw.AppendRow(table.Row{"Source", source})
	tw.AppendRow(table.Row{"ZIP files", FormatCount(int64(rep.Archives))})
	tw.AppendRow(table.Row{"Entries", FormatCount(rep.Entries)})
	tw.AppendRow(table.Row{"Size on disk", FormatBytes(rep.CompressedBytes)})
	tw.AppendRow(table.Row{"Uncompressed", FormatBytes(rep.UncompressedBytes)})
	if len(rep.Errors) > 0 {
		tw.AppendRow(table.Row{"Unreadable", FormatCount(int64(len(rep.Errors)))})
	}
	if rep.SampledFrom != "" {
		// Sample provenance lives here rather than in the histogram title:
		// a long archive name would outgrow the narrow histogram table and
		// go-pretty wraps oversized titles mid-word.
		tw.AppendRow(table.Row{"Sampled from", filepath.Base(rep.SampledFrom)})
		tw.AppendRow(table.Row{"Sample entries", FormatCount(int64(rep.SampledEntries))})
	}
	b.WriteString(tw.Render())
	b.WriteByte('\n')

	if rep.SampledFrom != "" && len(rep.Extensions) > 0 {
		b.WriteString(renderHistogram(rep))
		b.WriteByte('\n')
	}

	return b.String()
}

func renderHistogram(rep *engine.Report) string {
	type extCount struct {
		ext   string
		count int64
	}
	counts := make([]extCount, 0, len(rep.Extensions))
	for ext, n := range rep.Extensions {
		counts = append(counts, extCount{ext: ext, count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].ext < counts[j].ext
	})
	if len(counts) > histogramRows {
		counts = counts[:histogramRows]
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Extensions")
	tw.AppendHeader(table.Row{"Extension", "Files"})
	for _, c := range counts {
		tw.AppendRow(table.Row{"." + c.ext, FormatCount(c.count)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
