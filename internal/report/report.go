// Package report renders the read-only results of a pipeline run for the
// console and for the plain-text summary kept next to the logs. It never
// mutates the records or counters it is handed.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"camsort/internal/organize"
	"camsort/pkg/types"
)

// HumanBytes formats a byte count as B, KB, MB or GB with two decimals.
func HumanBytes(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	case size < 1024*1024*1024:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	}
	return fmt.Sprintf("%.2f GB", float64(size)/(1024*1024*1024))
}

// RenderSummary renders the run counters and the per-destination breakdown
// as console tables.
func RenderSummary(result *organize.Result) string {
	c := result.Counters

	var b strings.Builder
	metrics := table.NewWriter()
	metrics.SetStyle(table.StyleRounded)
	metrics.AppendHeader(table.Row{"Metric", "Value"})
	metrics.AppendRows([]table.Row{
		{"Processed", c.Processed},
		{"Moved", c.Count(types.Moved)},
		{"Duplicates skipped", c.Count(types.SkippedDuplicate)},
		{"Unclassified", c.Count(types.SkippedUnclassified)},
		{"Errors", c.Count(types.Error)},
		{"Bytes moved", HumanBytes(c.BytesMoved)},
	})
	b.WriteString(metrics.Render())
	b.WriteString("\n")

	if len(c.ByFolder) > 0 {
		folders := table.NewWriter()
		folders.SetStyle(table.StyleRounded)
		folders.AppendHeader(table.Row{"Destination", "Files", "Size"})
		folders.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
		})
		for _, key := range sortedFolderKeys(c) {
			tally := c.ByFolder[key]
			folders.AppendRow(table.Row{key, tally.Files, HumanBytes(tally.Bytes)})
		}
		b.WriteString(folders.Render())
		b.WriteString("\n")
	}
	return b.String()
}

// WriteTXT writes the plain-text run summary into dir and returns its path.
// The format mirrors the console summary plus the lists of unclassified and
// duplicate files, so a run remains auditable after the terminal is gone.
func WriteTXT(dir string, result *organize.Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("summary_%s.txt", time.Now().Format("20060102_150405")))

	c := result.Counters
	var b strings.Builder
	b.WriteString("CAMSORT RUN SUMMARY\n")
	b.WriteString(time.Now().Format("2006-01-02 15:04:05") + "\n\n")
	fmt.Fprintf(&b, "Processed:          %d\n", c.Processed)
	fmt.Fprintf(&b, "Moved:              %d\n", c.Count(types.Moved))
	fmt.Fprintf(&b, "Duplicates skipped: %d\n", c.Count(types.SkippedDuplicate))
	fmt.Fprintf(&b, "Unclassified:       %d\n", c.Count(types.SkippedUnclassified))
	fmt.Fprintf(&b, "Errors:             %d\n", c.Count(types.Error))
	fmt.Fprintf(&b, "Bytes moved:        %d (%s)\n", c.BytesMoved, HumanBytes(c.BytesMoved))

	if len(c.ByFolder) > 0 {
		b.WriteString("\nPer destination:\n")
		for _, key := range sortedFolderKeys(c) {
			tally := c.ByFolder[key]
			fmt.Fprintf(&b, "- %s: %d files, %s\n", key, tally.Files, HumanBytes(tally.Bytes))
		}
	}

	writeRecordList(&b, "Unclassified files", result.Records, types.SkippedUnclassified)
	writeRecordList(&b, "Duplicates skipped", result.Records, types.SkippedDuplicate)
	writeRecordList(&b, "Errors", result.Records, types.Error)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}
	return path, nil
}

func writeRecordList(b *strings.Builder, title string, records []types.MoveRecord, outcome types.Outcome) {
	var lines []string
	for _, rec := range records {
		if rec.Outcome != outcome {
			continue
		}
		line := "  * " + rec.SourcePath
		if rec.Err != nil {
			line += " (" + rec.Err.Error() + ")"
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n" + title + ":\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
}

func sortedFolderKeys(c *types.Counters) []string {
	keys := make([]string, 0, len(c.ByFolder))
	for key := range c.ByFolder {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
