package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Modifier{Kind: KindVisibility, Value: Protected}, NewModifier(Protected))
	assert.Equal(t, Modifier{Kind: KindScope, Value: Static}, NewModifier(Static))
	assert.Equal(t, Modifier{Kind: KindInheritance, Value: Override}, NewModifier(Override))
	assert.Equal(t, Modifier{Kind: KindOther, Value: Async}, NewModifier(Async))

	mods := Modifiers{NewModifier(Public), NewModifier(Const)}
	assert.True(t, mods.Has(Const))
	assert.False(t, mods.Has(Static))
}

func TestProject_ParentLookupAndAncestors(t *testing.T) {
	t.Parallel()

	root := &Class{Name: "Root", FullName: "n.Root"}
	mid := &Class{Name: "Mid", FullName: "n.Mid"}
	leaf := &Class{Name: "Leaf", FullName: "n.Leaf"}

	p := NewProject("test", []*Class{root, mid, leaf})
	mid.SetParent("n.Root")
	leaf.SetParent("n.Mid")

	assert.Same(t, mid, leaf.Parent())
	assert.Nil(t, root.Parent())
	assert.Equal(t, []*Class{mid, root}, leaf.Ancestors())
	assert.Same(t, leaf, p.FindClass("n.Leaf"))
	assert.Nil(t, p.FindClass("n.Missing"))
}

func TestClass_AncestorsStopsOnCycle(t *testing.T) {
	t.Parallel()

	a := &Class{Name: "A", FullName: "A"}
	b := &Class{Name: "B", FullName: "B"}

	NewProject("cycle", []*Class{a, b})
	a.SetParent("B")
	b.SetParent("A")

	assert.Equal(t, []*Class{b}, a.Ancestors())
}

func TestClass_UnresolvedParentIsNil(t *testing.T) {
	t.Parallel()

	c := &Class{Name: "C", FullName: "C"}
	NewProject("p", []*Class{c})
	c.SetParent("System.Exception")

	assert.Nil(t, c.Parent())
	assert.Empty(t, c.Ancestors())
}

func TestClass_Lookups(t *testing.T) {
	t.Parallel()

	c := &Class{Name: "C", FullName: "C"}
	get := &Member{Name: "Count", Kind: MemberProperty, Parent: c, FieldDefining: true}
	run := &Member{Name: "Run", Kind: MemberMethod, Parent: c, Params: []Parameter{{Name: "a", Type: "int"}, {Name: "b", Type: "string"}}}
	ctor := &Member{Name: "C", Kind: MemberConstructor, Parent: c}
	c.Members = []*Member{get, run, ctor}
	c.Fields = []*Field{{Name: "items", Type: "List<int>", Parent: c}}

	assert.Equal(t, []*Member{run}, c.Methods())
	assert.Same(t, run, c.FindMember("Run"))
	assert.Nil(t, c.FindMember("Stop"))
	require.NotNil(t, c.FindField("items"))
	assert.Equal(t, "C.items", c.FindField("items").ID())
	assert.Equal(t, "C.Run(int, string)", run.ID())
	assert.True(t, get.IsFieldDefiningAccessor())
	assert.False(t, run.IsFieldDefiningAccessor())
}

func TestMember_AccessesOwnData(t *testing.T) {
	t.Parallel()

	own := &Class{Name: "Own", FullName: "Own"}
	other := &Class{Name: "Other", FullName: "Other"}
	foreign := &Field{Name: "x", Parent: other}
	local := &Field{Name: "y", Parent: own}

	m := &Member{Name: "m", Kind: MemberMethod, Parent: own, AccessedFields: []*Field{foreign}}
	assert.False(t, m.AccessesOwnData())

	m.AccessedFields = append(m.AccessedFields, local)
	assert.True(t, m.AccessesOwnData())
	assert.Equal(t, []*Field{local}, m.OwnFields())

	peer := &Member{Name: "p", Kind: MemberMethod, Parent: own, AccessedFields: []*Field{local}}
	stranger := &Member{Name: "s", Kind: MemberMethod, Parent: own, AccessedFields: []*Field{foreign}}

	assert.True(t, m.SharesDataWith(peer))
	assert.False(t, m.SharesDataWith(stranger), "foreign fields are not shared data")
}

func TestClass_AttributeCount(t *testing.T) {
	t.Parallel()

	c := &Class{
		Fields: []*Field{{Name: "a"}, {Name: "b"}},
		Members: []*Member{
			{Name: "P", Kind: MemberProperty, FieldDefining: true},
			{Name: "Q", Kind: MemberProperty},
			{Name: "M", Kind: MemberMethod},
		},
	}

	assert.Equal(t, 3, c.AttributeCount())
}

func TestHistory(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	first := NewProject("c1", nil)
	second := NewProject("c2", nil)

	h.Add("c1", first)
	h.Add("c2", second)
	h.Add("c1", second)

	assert.Equal(t, []string{"c1", "c2"}, h.IDs())

	got, ok := h.Get("c1")
	require.True(t, ok)
	assert.Same(t, second, got)

	_, ok = h.Get("c3")
	assert.False(t, ok)
}
