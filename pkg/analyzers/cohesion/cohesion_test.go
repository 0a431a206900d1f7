package cohesion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	mt "github.com/Sumatoshi-tech/smellscope/pkg/model/modeltest"
)

func TestFullySharedClass(t *testing.T) {
	t.Parallel()

	c := mt.Class("n.Cohesive")
	fields := []*model.Field{mt.Field(c, "a"), mt.Field(c, "b"), mt.Field(c, "c"), mt.Field(c, "d")}

	for _, name := range []string{"m1", "m2", "m3", "m4"} {
		mt.Access(mt.Method(c, name), fields...)
	}

	assert.InDelta(t, 0.0, LCOM(c), 1e-9)
	assert.InDelta(t, 0.0, LCOM3(c), 1e-9)
	assert.InDelta(t, 0.0, LCOM4(c), 1e-9)
	assert.InDelta(t, 1.0, TCC(c), 1e-9)
}

func TestClassWithoutAttributes(t *testing.T) {
	t.Parallel()

	c := mt.Class("n.Stateless")
	mt.Method(c, "a")
	mt.Method(c, "b")
	mt.Method(c, "c")

	assert.InDelta(t, metrics.Undefined, LCOM(c), 1e-9)
	assert.InDelta(t, 0.0, LCOM3(c), 1e-9)
	assert.InDelta(t, 0.0, LCOM4(c), 1e-9)
	assert.InDelta(t, 0.0, TCC(c), 1e-9)
}

func TestPartiallySharedClass(t *testing.T) {
	t.Parallel()

	other := mt.Class("n.Other")
	foreign := mt.Field(other, "z")

	c := mt.Class("n.Mixed")
	a := mt.Field(c, "a")
	b := mt.Field(c, "b")

	m1 := mt.Access(mt.Method(c, "m1"), a)
	mt.Access(mt.Method(c, "m2"), a, b)
	mt.Invoke(mt.Method(c, "m3"), m1)
	mt.Access(mt.Method(c, "m4"), foreign)
	mt.Access(mt.Constructor(c), a, b)

	// sum(mA) = 1 + 2 + 0 + 0, a = 2, m = 4.
	assert.InDelta(t, 0.625, LCOM(c), 1e-9)
	assert.InDelta(t, 0.833, LCOM3(c), 1e-9)
	// m1, m2 and m3 are connected; m1 and m2 share a.
	assert.InDelta(t, 1.0, LCOM4(c), 1e-9)
	assert.InDelta(t, 0.17, TCC(c), 1e-9)
}

func TestAccessorsCountAsAttributes(t *testing.T) {
	t.Parallel()

	c := mt.Class("n.Props")
	name := mt.AutoProperty(c, "Name")

	mt.Use(mt.Method(c, "Greet"), name)
	mt.Use(mt.Method(c, "Print"), name)

	assert.InDelta(t, 0.0, LCOM(c), 1e-9)
	assert.InDelta(t, 1.0, TCC(c), 1e-9)
	assert.InDelta(t, 0.0, LCOM4(c), 1e-9)
}

func TestSingleMethodAndInheritedData(t *testing.T) {
	t.Parallel()

	base := mt.Class("n.Base")
	inherited := mt.Field(base, "x")

	c := mt.Class("n.Child")
	mt.Field(c, "y")
	mt.Access(mt.Method(c, "Run"), inherited)
	mt.Inherit(c, base)
	mt.Project(base, c)

	assert.InDelta(t, metrics.Undefined, TCC(c), 1e-9)
	assert.InDelta(t, 0.0, LCOM3(c), 1e-9)
	assert.InDelta(t, 1.0, LCOM(c), 1e-9, "inherited fields are not own data")
	assert.InDelta(t, 0.0, LCOM4(c), 1e-9)
}
