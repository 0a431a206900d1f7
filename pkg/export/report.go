package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/smellscope/pkg/rules"
)

// WriteReport renders a smell report in the given format.
func WriteReport(w io.Writer, format string, report *rules.Report) error {
	normalized, err := ParseFormat(format)
	if err != nil {
		return err
	}

	entries := report.Entries()

	switch normalized {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	case FormatCSV:
		return writeReportCSV(w, entries)
	default:
		writeReportTable(w, entries)

		return nil
	}
}

func writeReportCSV(w io.Writer, entries []rules.ReportEntry) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{csvIDHeader, "Smell", "Citation"})

	for _, entry := range entries {
		for _, issue := range entry.Issues {
			_ = cw.Write([]string{entry.CodeSnippetID, string(issue.SmellType), issue.Citation})
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	return nil
}

func writeReportTable(w io.Writer, entries []rules.ReportEntry) {
	tbl := newTable(w)
	tbl.SetTitle("Design smells")
	tbl.AppendHeader(table.Row{csvIDHeader, "Smell", "Citation"})

	total := 0

	for _, entry := range entries {
		for _, issue := range entry.Issues {
			tbl.AppendRow(table.Row{entry.CodeSnippetID, string(issue.SmellType), issue.Citation})

			total++
		}
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", total)})
	tbl.Render()
}
