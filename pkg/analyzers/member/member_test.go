package member

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
	n "github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node/nodetest"
)

const computeSource = `public int Compute(int a, int b)
{
    // comment
    int total = 0;
    /* block
       comment */
    for (int i = 0; i < a; i++)
    {
        if (i % 2 == 0 && b > 1)
        {
            total += i;
        }
    }

    return total;
}`

func computeMember() *model.Member {
	syntax := n.Method("Compute", "int", computeSource, n.Roles(node.RolePublic),
		n.Param("a", "int"),
		n.Param("b", "int"),
		n.Block(
			n.Var("total", "int", n.Number("0")),
			n.Loop(node.LoopFor,
				n.Var("i", "int", n.Number("0")),
				n.BinOp("<", n.Ident("i"), n.Ident("a")),
				n.Block(
					n.If(
						n.BinOp("&&",
							n.BinOp("==", n.BinOp("%", n.Ident("i"), n.Number("2")), n.Number("0")),
							n.BinOp(">", n.Ident("b"), n.Number("1"))),
						n.Block(n.Assign("+=", n.Ident("total"), n.Ident("i"))),
					),
				),
			),
			n.Return(n.Ident("total")),
		),
	)

	return &model.Member{
		Name:       "Compute",
		Kind:       model.MemberMethod,
		SourceCode: computeSource,
		Params:     []model.Parameter{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}},
		Syntax:     syntax,
	}
}

func TestCalculate_LoopsAndBranches(t *testing.T) {
	t.Parallel()

	values := Calculate(computeMember())

	expected := map[metrics.Kind]float64{
		metrics.CYCLO:       4,
		metrics.CYCLOSwitch: 4,
		metrics.MLOC:        16,
		metrics.MELOC:       5,
		metrics.NOP:         2,
		metrics.NOLV:        2,
		metrics.NOTC:        0,
		metrics.MNOL:        1,
		metrics.MNOR:        1,
		metrics.MNOC:        3,
		metrics.NOMI:        0,
		metrics.RFC:         0,
		metrics.MNOA:        1,
		metrics.NONL:        5,
		metrics.NOSL:        0,
		metrics.NOMO:        1,
		metrics.NOPE:        0,
		metrics.NOLE:        0,
		metrics.MMNB:        2,
	}

	for kind, want := range expected {
		assert.InDelta(t, want, values[kind], 0.0001, kind)
	}

	assert.Len(t, values, len(metrics.MemberKinds()))
}

func TestCalculate_SwitchTryAndExpressions(t *testing.T) {
	t.Parallel()

	syntax := n.Method("Handle", "void", "", nil,
		n.Block(
			n.Switch(
				n.Case(n.Call("", "A", 0)),
				n.Case(n.Call("", "A", 0)),
				n.Default(n.Call("", "B", 0)),
			),
			n.Try(
				n.Block(n.Call("log", "Write", 1, n.String(`"x"`))),
				n.Catch(n.Block()),
			),
			n.Loop(node.LoopDo, n.Block()),
			n.Var("f", "Func", n.Lambda(n.Paren(n.BinOp("+", n.Ident("x"), n.Number("1"))))),
			n.Block(n.Class("Local", "", "", nil, n.Method("Inner", "", "", nil, n.If()))),
		),
	)

	callee := &model.Member{Name: "A"}
	m := &model.Member{Name: "Handle", Syntax: syntax, InvokedMethods: []*model.Member{callee}}

	values := Calculate(m)

	assert.InDelta(t, 4, values[metrics.CYCLO], 0.0001, "two cases and one catch")
	assert.InDelta(t, 2, values[metrics.CYCLOSwitch], 0.0001)
	assert.InDelta(t, 1, values[metrics.NOTC], 0.0001)
	assert.InDelta(t, 1, values[metrics.MNOL], 0.0001, "do-while is a loop")
	assert.InDelta(t, 4, values[metrics.NOMI], 0.0001)
	assert.InDelta(t, 1, values[metrics.RFC], 0.0001)
	assert.InDelta(t, 1, values[metrics.NOSL], 0.0001)
	assert.InDelta(t, 1, values[metrics.NONL], 0.0001)
	assert.InDelta(t, 1, values[metrics.NOLE], 0.0001)
	assert.InDelta(t, 1, values[metrics.NOPE], 0.0001)
	assert.InDelta(t, 1, values[metrics.NOMO], 0.0001)
	assert.InDelta(t, 1, values[metrics.NOLV], 0.0001)
	assert.InDelta(t, 1, values[metrics.MMNB], 0.0001, "nested class body is not counted")
	assert.InDelta(t, 1, values[metrics.MLOC], 0.0001, "empty source is one line")
	assert.InDelta(t, 0, values[metrics.MELOC], 0.0001)
}

func TestCalculate_LocalsCountPerDeclaration(t *testing.T) {
	t.Parallel()

	syntax := n.Method("Twice", "void", "", nil,
		n.Block(
			n.Loop(node.LoopFor, n.Var("i", "int", n.Number("0")), n.Block()),
			n.Loop(node.LoopFor, n.Var("i", "int", n.Number("0")), n.Block()),
		),
	)

	values := Calculate(&model.Member{Name: "Twice", Syntax: syntax})

	assert.InDelta(t, 2, values[metrics.NOLV], 0.0001, "each loop declares its own i")
}

func TestCalculate_NoSyntax(t *testing.T) {
	t.Parallel()

	values := Calculate(&model.Member{Name: "Abstract", Params: []model.Parameter{{Name: "x"}}})

	assert.InDelta(t, 1, values[metrics.CYCLO], 0.0001)
	assert.InDelta(t, 1, values[metrics.NOP], 0.0001)
	assert.InDelta(t, 0, values[metrics.MMNB], 0.0001)
}

func TestEffectiveLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"empty", "", 0},
		{"single line", "int X() => 1;", 0},
		{"empty body", "void M()\n{\n}\n", 0},
		{"crlf body", "void M()\r\n{\r\n  a();\r\n  b();\r\n}", 2},
		{"comment markers in strings", "void M() {\n  var s = \"http://x\";\n  // gone\n}", 1},
		{"trailing comment keeps code", "void M() {\n  a(); // call\n  /* c */ b();\n}", 2},
		{"block comment spans lines", "void M() {\n  /*\n   * doc\n   */\n  a();\n}", 1},
		{"closing delimiters", "void M() {\n  run(() => {\n    a();\n  });\n}", 2},
		{"attribute before signature", "[HttpGet]\n[Route(\"x\")]\npublic int Get()\n{\n  return 1;\n}", 1},
		{"annotation before signature", "@Override\npublic int get() {\n  return 1;\n}", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, EffectiveLines(tt.source))
		})
	}
}

func TestUniqueWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, UniqueWords("a b a\tc\n b"))
	assert.Equal(t, 0, UniqueWords("  \n "))
}

func TestRegistryOrderMatchesKinds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, metrics.MemberKinds(), Registry.Kinds())
}
