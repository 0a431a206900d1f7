package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
)

// Metric scopes.
const (
	ScopeClass  = "class"
	ScopeMember = "member"
)

// CatalogEntry describes one computed metric.
type CatalogEntry struct {
	Kind        string `json:"kind"        yaml:"kind"`
	Scope       string `json:"scope"       yaml:"scope"`
	Name        string `json:"name"        yaml:"name"`
	Category    string `json:"category"    yaml:"category"`
	Description string `json:"description" yaml:"description"`
}

// NewCatalog lists the metadata of a metric registry under one scope.
func NewCatalog(scope string, metas []metrics.MetricMeta) []CatalogEntry {
	out := make([]CatalogEntry, 0, len(metas))

	for _, meta := range metas {
		out = append(out, CatalogEntry{
			Kind:        meta.Name(),
			Scope:       scope,
			Name:        meta.DisplayName(),
			Category:    meta.Type(),
			Description: meta.Description(),
		})
	}

	return out
}

// WriteCatalog renders metric descriptions in the given format.
func WriteCatalog(w io.Writer, format string, entries []CatalogEntry) error {
	normalized, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch normalized {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	case FormatCSV:
		return writeCatalogCSV(w, entries)
	default:
		writeCatalogTable(w, entries)

		return nil
	}
}

func catalogRecord(e CatalogEntry) []string {
	return []string{e.Kind, e.Scope, e.Name, e.Category, e.Description}
}

func writeCatalogCSV(w io.Writer, entries []CatalogEntry) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{"Kind", "Scope", "Name", "Category", "Description"})

	for _, e := range entries {
		_ = cw.Write(catalogRecord(e))
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	return nil
}

func writeCatalogTable(w io.Writer, entries []CatalogEntry) {
	tbl := newTable(w)
	tbl.SetTitle("Metrics")
	tbl.AppendHeader(table.Row{"Kind", "Scope", "Name", "Category", "Description"})

	for _, e := range entries {
		tbl.AppendRow(table.Row{e.Kind, e.Scope, e.Name, e.Category, e.Description})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", len(entries))})
	tbl.Render()
}
