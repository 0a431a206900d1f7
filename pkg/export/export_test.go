package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/smellscope/pkg/export"
	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/rules"
)

func sampleSnapshot() *analyze.Snapshot {
	return &analyze.Snapshot{
		Source: "demo",
		Classes: []analyze.ClassResult{
			{
				ID:      "n.Order",
				Metrics: metrics.Values{metrics.WMC: 12, metrics.LCOM: 0.6254, metrics.TCC: 0.5},
				Members: []analyze.MemberResult{
					{ID: "n.Order.Add(int)", Kind: "Method", Metrics: metrics.Values{metrics.CYCLO: 3}},
				},
			},
			{ID: "n.Util", Static: true, Metrics: metrics.Values{metrics.WMC: 1, metrics.LCOM: metrics.Undefined}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]string{
		"JSON": export.FormatJSON, " yml ": export.FormatYAML, "csv": export.FormatCSV, "text": export.FormatTable,
	} {
		got, err := export.ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := export.ParseFormat("xml")
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestWriteSnapshot_CSV(t *testing.T) {
	t.Parallel()

	opts := export.Options{Kinds: []metrics.Kind{metrics.WMC, metrics.LCOM}, Precision: 2}

	var buf bytes.Buffer

	require.NoError(t, export.WriteSnapshot(&buf, "csv", sampleSnapshot(), opts))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Code Snippet ID,WMC,LCOM", lines[0])
	assert.Equal(t, "n.Order,12.00,0.63", lines[1])
	assert.Equal(t, "n.Util,1.00,-1.00", lines[2])
}

func TestWriteSnapshot_CSVWithMembers(t *testing.T) {
	t.Parallel()

	opts := export.DefaultOptions()
	opts.Members = true

	var buf bytes.Buffer

	require.NoError(t, export.WriteSnapshot(&buf, "csv", sampleSnapshot(), opts))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Code Snippet ID,CLOC,"))
	assert.Contains(t, out, "\nCode Snippet ID,CYCLO,")
	assert.Contains(t, out, "\nn.Order.Add(int),3,")
}

func TestWriteSnapshot_JSONAndYAML(t *testing.T) {
	t.Parallel()

	var js bytes.Buffer

	require.NoError(t, export.WriteSnapshot(&js, "json", sampleSnapshot(), export.DefaultOptions()))

	var decoded analyze.Snapshot

	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, *sampleSnapshot(), decoded)

	var ym bytes.Buffer

	require.NoError(t, export.WriteSnapshot(&ym, "yaml", sampleSnapshot(), export.DefaultOptions()))

	var fromYAML analyze.Snapshot

	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, "n.Util", fromYAML.Classes[1].ID)
	assert.True(t, fromYAML.Classes[1].Static)
}

func TestWriteSnapshot_Table(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	opts := export.Options{Kinds: []metrics.Kind{metrics.WMC}, Precision: 0, Members: true}
	require.NoError(t, export.WriteSnapshot(&buf, "table", sampleSnapshot(), opts))

	out := buf.String()
	assert.Contains(t, out, "Classes: demo")
	assert.Contains(t, out, "n.Order")
	assert.Contains(t, out, "Members: demo")
	assert.Contains(t, out, "TOTAL: 2")
}

func TestWriteSnapshots(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	snaps := []*analyze.Snapshot{sampleSnapshot(), sampleSnapshot()}
	require.NoError(t, export.WriteSnapshots(&buf, "json", snaps, export.DefaultOptions()))

	var decoded []analyze.Snapshot

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)

	buf.Reset()
	require.NoError(t, export.WriteSnapshots(&buf, "csv", snaps, export.Options{Kinds: []metrics.Kind{metrics.WMC}}))
	assert.Equal(t, 2, strings.Count(buf.String(), "Code Snippet ID"))
}

func sampleReport() *rules.Report {
	report := rules.NewReport()
	report.Add(rules.Issue{CodeSnippetID: "n.Order", SmellType: rules.GodClass, Citation: "10.1109/MSR.2007.21"})
	report.Add(rules.Issue{CodeSnippetID: "n.Order", SmellType: rules.GodClass, Citation: "10.1109/WCRE.2005.15"})

	return report
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, export.WriteReport(&buf, "csv", sampleReport()))
	assert.Equal(t,
		"Code Snippet ID,Smell,Citation\nn.Order,GOD_CLASS,10.1109/MSR.2007.21\nn.Order,GOD_CLASS,10.1109/WCRE.2005.15\n",
		buf.String())

	buf.Reset()
	require.NoError(t, export.WriteReport(&buf, "json", sampleReport()))

	var entries []rules.ReportEntry

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Issues, 2)

	buf.Reset()
	require.NoError(t, export.WriteReport(&buf, "table", sampleReport()))
	assert.Contains(t, buf.String(), "GOD_CLASS")

	require.ErrorIs(t, export.WriteReport(&buf, "pdf", sampleReport()), export.ErrUnsupportedFormat)
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	export.WriteSummary(&buf, export.Summary{
		Files: 3, InputBytes: 2048, Classes: 4, Members: 21, Smelly: 1, Issues: 2,
		Elapsed: 1500 * time.Millisecond, Detected: true,
	})

	out := buf.String()
	assert.Contains(t, out, "Measured 4 classes and 21 members from 3 files (2.0 kB) in 1.5s")
	assert.Contains(t, out, "2 issues in 1 class of 4")

	buf.Reset()
	export.WriteSummary(&buf, export.Summary{Classes: 1, Detected: true})
	assert.Contains(t, buf.String(), "No design smells detected")
}

func TestWriteCatalog(t *testing.T) {
	t.Parallel()

	entries := export.NewCatalog(export.ScopeClass, []metrics.MetricMeta{{
		MetricName:        "WMC",
		MetricDisplayName: "Weighted Methods per Class",
		MetricDescription: "Sum of member cyclomatic complexity",
		MetricType:        "complexity",
	}})
	require.Len(t, entries, 1)
	assert.Equal(t, export.ScopeClass, entries[0].Scope)

	var csvOut bytes.Buffer
	require.NoError(t, export.WriteCatalog(&csvOut, "csv", entries))
	assert.Equal(t, "Kind,Scope,Name,Category,Description\n"+
		"WMC,class,Weighted Methods per Class,complexity,Sum of member cyclomatic complexity\n", csvOut.String())

	var jsonOut bytes.Buffer
	require.NoError(t, export.WriteCatalog(&jsonOut, "json", entries))

	var decoded []export.CatalogEntry
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &decoded))
	assert.Equal(t, entries, decoded)

	var tableOut bytes.Buffer
	require.NoError(t, export.WriteCatalog(&tableOut, "table", entries))
	assert.Contains(t, tableOut.String(), "Weighted Methods per Class")

	require.ErrorIs(t, export.WriteCatalog(&tableOut, "xml", entries), export.ErrUnsupportedFormat)
}
