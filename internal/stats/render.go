package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"camsort/internal/report"
)

// Render formats the aggregates as console tables.
func (s *Stats) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total files: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "Total size:  %s\n", report.HumanBytes(s.TotalBytes))

	b.WriteString(renderCounts("Camera", s.ByCamera))
	b.WriteString(renderCounts("Extension", s.ByExtension))

	if len(s.ByYear) > 0 {
		years := make([]int, 0, len(s.ByYear))
		for year := range s.ByYear {
			years = append(years, year)
		}
		sort.Ints(years)
		byYear := make(map[string]int, len(years))
		for _, year := range years {
			byYear[fmt.Sprint(year)] = s.ByYear[year]
		}
		b.WriteString(renderCounts("Year", byYear))
	}
	return b.String()
}

func renderCounts(label string, counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{label, "Files"})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	for _, key := range keys {
		tw.AppendRow(table.Row{key, counts[key]})
	}
	return tw.Render() + "\n"
}
