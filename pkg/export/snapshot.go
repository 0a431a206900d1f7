package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
)

// csvIDHeader is the first CSV column.
const csvIDHeader = "Code Snippet ID"

const yamlIndent = 2

// Options controls snapshot rendering.
type Options struct {
	// Kinds are the metric columns of CSV and table output; empty means all class kinds.
	Kinds []metrics.Kind
	// Precision is the number of decimals in CSV and table cells; negative keeps full precision.
	Precision int
	// Members adds member rows after the class rows in CSV and table output.
	Members bool
}

// DefaultOptions renders every class metric at full precision.
func DefaultOptions() Options {
	return Options{Precision: -1}
}

func (o Options) kinds(members bool) []metrics.Kind {
	if len(o.Kinds) > 0 {
		return o.Kinds
	}

	if members {
		return metrics.MemberKinds()
	}

	return metrics.ClassKinds()
}

func (o Options) cell(values metrics.Values, kind metrics.Kind) string {
	value, ok := values.Get(kind)
	if !ok {
		return ""
	}

	return strconv.FormatFloat(value, 'f', o.Precision, 64)
}

// WriteSnapshot renders snap in the given format.
func WriteSnapshot(w io.Writer, format string, snap *analyze.Snapshot, opts Options) error {
	normalized, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch normalized {
	case FormatJSON:
		return writeJSON(w, snap)
	case FormatYAML:
		return writeYAML(w, snap)
	case FormatCSV:
		return writeSnapshotCSV(w, snap, opts)
	default:
		return writeSnapshotTable(w, snap, opts)
	}
}

// WriteSnapshots renders a history of snapshots. CSV and table output
// concatenate one block per snapshot.
func WriteSnapshots(w io.Writer, format string, snaps []*analyze.Snapshot, opts Options) error {
	normalized, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch normalized {
	case FormatJSON:
		return writeJSON(w, snaps)
	case FormatYAML:
		return writeYAML(w, snaps)
	}

	for _, snap := range snaps {
		if err := WriteSnapshot(w, normalized, snap, opts); err != nil {
			return err
		}
	}

	return nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}

func writeSnapshotCSV(w io.Writer, snap *analyze.Snapshot, opts Options) error {
	cw := csv.NewWriter(w)

	writeBlock := func(kinds []metrics.Kind, rows func(emit func(id string, values metrics.Values))) {
		header := make([]string, 0, len(kinds)+1)
		header = append(header, csvIDHeader)

		for _, kind := range kinds {
			header = append(header, string(kind))
		}

		_ = cw.Write(header)

		rows(func(id string, values metrics.Values) {
			record := make([]string, 0, len(kinds)+1)
			record = append(record, id)

			for _, kind := range kinds {
				record = append(record, opts.cell(values, kind))
			}

			_ = cw.Write(record)
		})
	}

	writeBlock(opts.kinds(false), func(emit func(string, metrics.Values)) {
		for _, c := range snap.Classes {
			emit(c.ID, c.Metrics)
		}
	})

	if opts.Members {
		writeBlock(metrics.MemberKinds(), func(emit func(string, metrics.Values)) {
			for _, c := range snap.Classes {
				for _, m := range c.Members {
					emit(m.ID, m.Metrics)
				}
			}
		})
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	return nil
}

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

type metricRow struct {
	id     string
	values metrics.Values
}

func metricTable(w io.Writer, title string, kinds []metrics.Kind, opts Options, rows []metricRow) {
	tbl := newTable(w)
	tbl.SetTitle(title)

	header := table.Row{csvIDHeader}
	for _, kind := range kinds {
		header = append(header, string(kind))
	}

	tbl.AppendHeader(header)

	for _, row := range rows {
		cells := table.Row{row.id}
		for _, kind := range kinds {
			cells = append(cells, opts.cell(row.values, kind))
		}

		tbl.AppendRow(cells)
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", len(rows))})
	tbl.Render()
}

func writeSnapshotTable(w io.Writer, snap *analyze.Snapshot, opts Options) error {
	rows := make([]metricRow, 0, len(snap.Classes))
	for _, c := range snap.Classes {
		rows = append(rows, metricRow{c.ID, c.Metrics})
	}

	metricTable(w, "Classes: "+snap.Source, opts.kinds(false), opts, rows)

	if !opts.Members {
		return nil
	}

	rows = rows[:0]

	for _, c := range snap.Classes {
		for _, m := range c.Members {
			rows = append(rows, metricRow{m.ID, m.Metrics})
		}
	}

	metricTable(w, "Members: "+snap.Source, metrics.MemberKinds(), opts, rows)

	return nil
}
