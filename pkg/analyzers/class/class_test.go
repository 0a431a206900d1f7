package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	mt "github.com/Sumatoshi-tech/smellscope/pkg/model/modeltest"
)

func TestRegistryCoversEveryClassKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, metrics.ClassKinds(), Registry.Kinds())

	values := Calculate(mt.Class("n.Empty"))
	assert.Len(t, values, len(metrics.ClassKinds()))

	for _, kind := range metrics.ClassKinds() {
		_, ok := values.Get(kind)
		assert.True(t, ok, kind)
	}
}

func TestCLOCAnyNewlineConvention(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{"lf", "class A\n{\n}", 3},
		{"crlf", "class A\r\n{\r\n}", 3},
		{"cr", "class A\r{\r}", 3},
		{"mixed", "a\r\nb\rc\nd", 4},
		{"trailing newline", "class A {}\n", 2},
		{"empty", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := mt.Class("n.A")
			c.SourceCode = tt.source

			assert.InDelta(t, tt.want, Calculate(c)[metrics.CLOC], 1e-9)
		})
	}
}

func TestAggregatesOverMemberMetrics(t *testing.T) {
	t.Parallel()

	c := mt.Class("n.Agg")

	withMetrics := func(m *model.Member, cyclo, cycloSwitch, eloc, mmnb float64) {
		m.Metrics = metrics.Values{
			metrics.CYCLO: cyclo, metrics.CYCLOSwitch: cycloSwitch, metrics.MELOC: eloc,
			metrics.MMNB: mmnb, metrics.MNOR: 1, metrics.MNOL: 2, metrics.MNOC: 3, metrics.MNOA: 4,
		}
	}

	withMetrics(mt.Method(c, "a"), 4, 3, 10, 2)
	withMetrics(mt.Method(c, "b"), 1, 1, 3, 0)
	withMetrics(mt.Constructor(c), 2, 2, 5, 1)
	withMetrics(mt.Property(c, "P"), 3, 2, 4, 3)

	values := Calculate(c)

	var cycloSum float64
	for _, m := range c.Members {
		cycloSum += m.Metrics[metrics.CYCLO]
	}

	assert.Equal(t, cycloSum, values[metrics.WMC], "WMC equals the CYCLO sum exactly")
	assert.InDelta(t, 8.0, values[metrics.WMCNoCase], 1e-9)
	assert.InDelta(t, 7.0, values[metrics.WMCNAMM], 1e-9, "property excluded")
	assert.InDelta(t, 22.0, values[metrics.CELOC], 1e-9)
	assert.InDelta(t, 3.0, values[metrics.CMNB], 1e-9)
	assert.InDelta(t, 4.0, values[metrics.CNOR], 1e-9)
	assert.InDelta(t, 8.0, values[metrics.CNOL], 1e-9)
	assert.InDelta(t, 12.0, values[metrics.CNOC], 1e-9)
	assert.InDelta(t, 16.0, values[metrics.CNOA], 1e-9)
	assert.InDelta(t, 2.0, values[metrics.NMD], 1e-9, "only Method-kind members")
}

func TestVisibilityMetrics(t *testing.T) {
	t.Parallel()

	c := mt.Class("n.Account")
	mt.Field(c, "balance", model.Public)
	mt.Field(c, "Limit", model.Public, model.Const)
	mt.Field(c, "Count", model.Public, model.Static)
	mt.Field(c, "owner", model.Protected)
	mt.Field(c, "secret", model.Private)
	mt.AutoProperty(c, "Id", model.Public)
	mt.Property(c, "Label", model.Public)
	mt.Property(c, "hidden", model.Private)

	mt.Method(c, "Deposit", model.Public)
	mt.Method(c, "Withdraw", model.Public)
	mt.Method(c, "Audit", model.Public, model.Abstract)
	mt.Method(c, "check", model.Private)
	mt.Method(c, "verify", model.Private)
	mt.Constructor(c, model.Public)

	mt.Inner(c, mt.Class("n.Account.Entry"))

	values := Calculate(c)

	assert.InDelta(t, 1.0, values[metrics.NOPA], 1e-9, "static and const excluded")
	assert.InDelta(t, 2.0, values[metrics.NOPP], 1e-9)
	assert.InDelta(t, 3.0, values[metrics.NOPANOPP], 1e-9)
	assert.InDelta(t, 0.667, values[metrics.WOC], 1e-9, "Deposit and Withdraw over three public data")
	assert.InDelta(t, 2.0, values[metrics.NOPM], 1e-9)
	assert.InDelta(t, 1.0, values[metrics.NOPF], 1e-9)
	assert.InDelta(t, 6.0, values[metrics.NAD], 1e-9, "five fields and one auto property")
	assert.InDelta(t, 5.0, values[metrics.NMD], 1e-9)
	assert.InDelta(t, 11.0, values[metrics.NMDNAD], 1e-9)
	assert.InDelta(t, 1.0, values[metrics.NIC], 1e-9)
}

func TestWOCWithoutPublicData(t *testing.T) {
	t.Parallel()

	c := mt.Class("n.Service")
	mt.Method(c, "Run", model.Public)

	assert.InDelta(t, 0.0, WOC(c), 1e-9)
}

func TestStatelessClass(t *testing.T) {
	t.Parallel()

	c := mt.Class("n.Stateless")
	mt.Method(c, "a")
	mt.Method(c, "b")
	mt.Method(c, "c")

	values := Calculate(c)

	require.Contains(t, values, metrics.LCOM)
	assert.InDelta(t, 0.0, values[metrics.ATFD], 1e-9)
	assert.InDelta(t, metrics.Undefined, values[metrics.LCOM], 1e-9)
	assert.InDelta(t, 0.0, values[metrics.CMNB], 1e-9)
	assert.InDelta(t, 0.0, values[metrics.DIT], 1e-9)
}
