package builder

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
	n "github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node/nodetest"
)

func file(path string, root *node.Node) uast.File {
	return uast.File{Path: path, Root: root}
}

func build(t *testing.T, files ...uast.File) *model.Project {
	t.Helper()

	project, err := New(WithWorkers(2)).Build(context.Background(), "test", files)
	require.NoError(t, err)

	return project
}

func shopFiles() []uast.File {
	order := n.File("Order.cs",
		n.Import("Shop.Lines"),
		n.Namespace("Shop",
			n.Class("Order", "", "class Order {}", n.Roles(node.RolePublic),
				n.Field("items", "List<OrderLine>", node.RolePrivate),
				n.Field("total", "decimal", node.RolePrivate),
				n.Method("Add", "void", "", n.Roles(node.RolePublic),
					n.Param("line", "OrderLine"),
					n.Block(
						n.Call("items", "Add", 1),
						n.Ref("", "items"),
						n.Ref("line", "Price"),
						n.Assign("+=", n.Ref("this", "total")),
						n.Call("", "Recalc", 0),
						n.Call("Console", "WriteLine", 1),
					),
				),
				n.Method("Recalc", "void", "", nil, n.Block(n.Var("total", "decimal"), n.Ref("", "total"))),
				n.Method("Recalc", "void", "", nil, n.Param("factor", "int"), n.Block()),
				n.Method("Scale", "void", "", nil, n.Block(n.Call("", "Recalc", 1))),
			),
		),
	)

	line := n.File("OrderLine.cs",
		n.Namespace("Shop.Lines",
			n.Class("OrderLine", "", "", n.Roles(node.RolePublic),
				n.Property("Price", "decimal", n.Roles(node.RolePublic)),
				n.Method("Copy", "OrderLine", "", nil, n.Block(n.Var("clone", "OrderLine"))),
			),
		),
	)

	return []uast.File{file("Order.cs", order), file("OrderLine.cs", line)}
}

func TestBuild_DeclarationPass(t *testing.T) {
	t.Parallel()

	project := build(t, shopFiles()...)

	require.Len(t, project.Classes, 2)

	order := project.FindClass("Shop.Order")
	require.NotNil(t, order)
	assert.Equal(t, "Order", order.Name)
	assert.Equal(t, "Shop", order.Namespace)
	assert.Equal(t, "Order.cs", order.Path)
	assert.Equal(t, "class Order {}", order.SourceCode)
	assert.True(t, order.Modifiers.Has(model.Public))
	assert.Equal(t, []string{"Shop.Lines"}, order.Imports)
	require.Len(t, order.Fields, 2)
	require.Len(t, order.Members, 4)

	add := order.Members[0]
	assert.Equal(t, model.MemberMethod, add.Kind)
	assert.Equal(t, []model.Parameter{{Name: "line", Type: "OrderLine"}}, add.Params)
	assert.Same(t, order, add.Parent)
	assert.NotNil(t, add.Syntax)

	price := project.FindClass("Shop.Lines.OrderLine").FindMember("Price")
	require.NotNil(t, price)
	assert.True(t, price.IsFieldDefiningAccessor())
}

func TestBuild_LinkingResolvesReferences(t *testing.T) {
	t.Parallel()

	project := build(t, shopFiles()...)

	order := project.FindClass("Shop.Order")
	line := project.FindClass("Shop.Lines.OrderLine")
	add := order.FindMember("Add")

	assert.Equal(t, []*model.Field{order.FindField("items"), order.FindField("total")}, add.AccessedFields)
	assert.Equal(t, []*model.Member{line.FindMember("Price")}, add.AccessedAccessors)
	require.Len(t, add.InvokedMethods, 1, "List.Add and Console.WriteLine are external")
	assert.Same(t, order.Members[1], add.InvokedMethods[0], "zero-arity overload")
	assert.Equal(t, []*model.Class{line}, add.LinkedParameterTypes)
	assert.Empty(t, add.LinkedReturnTypes)

	scale := order.FindMember("Scale")
	require.Len(t, scale.InvokedMethods, 1)
	assert.Same(t, order.Members[2], scale.InvokedMethods[0], "one-arity overload")

	assert.Equal(t, []*model.Class{line}, order.FindField("items").LinkedTypes)

	recalc := order.Members[1]
	assert.Empty(t, recalc.AccessedFields, "local variable shadows the field")

	copyMethod := line.FindMember("Copy")
	assert.Equal(t, []*model.Class{line}, copyMethod.LinkedReturnTypes)
	assert.Equal(t, []*model.Class{line}, copyMethod.LinkedVariableTypes)
}

func TestBuild_LambdaParametersHideFields(t *testing.T) {
	t.Parallel()

	root := n.File("A.cs",
		n.Class("A", "", "", nil,
			n.Field("x", "int"),
			n.Field("y", "int"),
			n.Method("Shadowed", "void", "", nil,
				n.Block(n.Lambda(n.Param("x", "int"), n.Block(n.Ref("", "x"))))),
			n.Method("Qualified", "void", "", nil,
				n.Block(n.Lambda(n.Param("x", "int"), n.Block(n.Ref("this", "x"))))),
			n.Method("Outside", "void", "", nil,
				n.Block(
					n.Lambda(n.Param("x", "int"), n.Block(n.Ref("", "y"))),
					n.Ref("", "x"),
				)),
		),
	)

	a := build(t, file("A.cs", root)).FindClass("A")
	require.NotNil(t, a)

	assert.Empty(t, a.FindMember("Shadowed").AccessedFields)
	assert.Equal(t, []*model.Field{a.FindField("x")}, a.FindMember("Qualified").AccessedFields)
	assert.Equal(t, []*model.Field{a.FindField("y"), a.FindField("x")}, a.FindMember("Outside").AccessedFields,
		"the lambda scope ends with its subtree")
}

func TestBuild_InheritanceAndInheritedMembers(t *testing.T) {
	t.Parallel()

	base := n.File("Base.cs", n.Namespace("Core",
		n.Class("Base", "", "", nil,
			n.Field("count", "int", node.RoleProtected),
			n.Method("Reset", "void", "", n.Roles(node.RoleProtected), n.Block()),
		),
	))
	derived := n.File("Derived.cs", n.Import("Core"), n.Namespace("App",
		n.Class("Derived", "Base", "", nil,
			n.Method("Run", "void", "", nil, n.Block(
				n.Ref("", "count"),
				n.Call("base", "Reset", 0),
			)),
		),
		n.Class("Failure", "Exception", "", nil),
		n.Class("Generic", "Derived<int>", "", nil),
	))

	project := build(t, file("Base.cs", base), file("Derived.cs", derived))

	baseClass := project.FindClass("Core.Base")
	derivedClass := project.FindClass("App.Derived")

	assert.Same(t, baseClass, derivedClass.Parent())
	assert.Equal(t, "Core.Base", derivedClass.ParentName())
	assert.Nil(t, project.FindClass("App.Failure").Parent(), "external base stays unresolved")
	assert.Same(t, derivedClass, project.FindClass("App.Generic").Parent())

	run := derivedClass.FindMember("Run")
	assert.Equal(t, []*model.Field{baseClass.FindField("count")}, run.AccessedFields)
	assert.Equal(t, []*model.Member{baseClass.FindMember("Reset")}, run.InvokedMethods)
}

func TestBuild_InnerClasses(t *testing.T) {
	t.Parallel()

	root := n.File("Outer.cs", n.Namespace("N",
		n.Class("Outer", "", "", nil,
			n.Field("helper", "Helper"),
			n.Class("Helper", "", "", nil, n.Field("x", "int")),
		),
	))

	project := build(t, file("Outer.cs", root))

	require.Len(t, project.Classes, 2)

	outer := project.Classes[0]
	inner := project.Classes[1]

	assert.Equal(t, "N.Outer.Helper", inner.FullName)
	assert.Same(t, outer, inner.Outer)
	assert.True(t, inner.IsInner())
	assert.Equal(t, []*model.Class{inner}, outer.InnerClasses)
	assert.Equal(t, []*model.Class{inner}, outer.FindField("helper").LinkedTypes)
}

func TestBuild_PartialClassesMerge(t *testing.T) {
	t.Parallel()

	first := n.File("A1.cs", n.Class("A", "", "part one", n.Roles(node.RolePartial), n.Field("x", "int")))
	second := n.File("A2.cs", n.Class("A", "", "part two", n.Roles(node.RolePartial, node.RolePublic),
		n.Method("M", "void", "", nil, n.Block(n.Ref("", "x")))))

	project := build(t, file("A1.cs", first), file("A2.cs", second))

	require.Len(t, project.Classes, 1)

	a := project.Classes[0]
	assert.Equal(t, "part one\npart two", a.SourceCode)
	assert.True(t, a.Modifiers.Has(model.Public))
	assert.Same(t, a, a.FindMember("M").Parent)
	assert.Equal(t, []*model.Field{a.FindField("x")}, a.FindMember("M").AccessedFields)
}

func TestBuild_FailsAtomically(t *testing.T) {
	t.Parallel()

	good := n.File("Good.cs", n.Class("Good", "", "", nil))
	bad := n.File("Bad.cs", n.Class("", "", "", nil))

	project, err := New().Build(context.Background(), "test",
		[]uast.File{file("Good.cs", good), file("Bad.cs", bad), file("Nil.cs", nil)})
	require.Error(t, err)
	assert.Nil(t, project)

	var buildErr *ModelBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "Bad.cs", buildErr.Path)
	require.ErrorIs(t, err, ErrUnnamedClass)
	require.ErrorIs(t, err, ErrNilRoot)
	assert.Contains(t, err.Error(), "Nil.cs")
}

func TestBuild_DuplicateClass(t *testing.T) {
	t.Parallel()

	one := n.File("One.cs", n.Class("Same", "", "", nil))
	two := n.File("Two.cs", n.Class("Same", "", "", nil))

	_, err := New().Build(context.Background(), "test", []uast.File{file("One.cs", one), file("Two.cs", two)})
	require.ErrorIs(t, err, ErrDuplicateClass)

	var buildErr *ModelBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "Two.cs", buildErr.Path)
}

func TestBuild_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Build(ctx, "test", shopFiles())
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildSources(t *testing.T) {
	t.Parallel()

	validator, err := uast.NewValidator()
	require.NoError(t, err)

	data, err := json.Marshal(n.File("src/Order.cs", n.Class("Order", "", "", nil)))
	require.NoError(t, err)

	var seen atomic.Int32

	b := New(WithValidator(validator), WithFileHook(func(string) { seen.Add(1) }))

	project, err := b.BuildSources(context.Background(), "stdin", []uast.Source{{Path: "stdin#0", Data: data}})
	require.NoError(t, err)
	require.Len(t, project.Classes, 1)
	assert.Equal(t, "src/Order.cs", project.Classes[0].Path)
	assert.Equal(t, "C#", project.Language)
	assert.Equal(t, int32(1), seen.Load())

	_, err = b.BuildSources(context.Background(), "stdin", []uast.Source{{Path: "stdin#1", Data: []byte(`{"type":"Nope"}`)}})

	var buildErr *ModelBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "stdin#1", buildErr.Path)
	assert.True(t, errors.Is(err, uast.ErrSchemaViolation))
}
