// Package member computes metrics of a single method, constructor or
// property from its own syntax subtree.
package member

import (
	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/textutil"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
)

// Summary is everything the member metrics are derived from.
type Summary struct {
	Counts

	Parameters     int
	Lines          int
	EffectiveLines int
	UniqueWords    int
	InvokedMethods int
}

// Summarize walks the member's syntax once and measures its source text.
func Summarize(m *model.Member) *Summary {
	visitor := newBodyVisitor()
	node.Walk(m.Syntax, visitor)

	return &Summary{
		Counts:         visitor.counts,
		Parameters:     len(m.Params),
		Lines:          textutil.CountLines(m.SourceCode),
		EffectiveLines: EffectiveLines(m.SourceCode),
		UniqueWords:    UniqueWords(m.SourceCode),
		InvokedMethods: len(m.InvokedMethods),
	}
}

// Cyclomatic returns 1 plus the number of branching constructs; case labels
// are included only when withCases is set.
func (s *Summary) Cyclomatic(withCases bool) int {
	branches := s.IfStatements + (s.Loops - s.DoLoops) + s.CatchClauses + s.LogicalOperators
	if withCases {
		branches += s.CaseLabels
	}

	return 1 + branches
}

func count(fn func(*Summary) int) func(*Summary) float64 {
	return func(s *Summary) float64 { return float64(fn(s)) }
}

// Registry is the catalog of member metrics, in canonical order.
//
//nolint:gochecknoglobals // immutable catalog.
var Registry = metrics.NewRegistry[*Summary]().MustRegister(
	metrics.NewFunc(metrics.CYCLO, "Cyclomatic Complexity", metrics.TypeComplexity,
		"1 + if, while, for, foreach, case, catch, && and || constructs in the body.",
		count(func(s *Summary) int { return s.Cyclomatic(true) })),
	metrics.NewFunc(metrics.CYCLOSwitch, "Cyclomatic Complexity without Cases", metrics.TypeComplexity,
		"CYCLO without case labels.",
		count(func(s *Summary) int { return s.Cyclomatic(false) })),
	metrics.NewFunc(metrics.MLOC, "Lines of Code", metrics.TypeSize,
		"Physical lines of the member source, blank and comment lines included.",
		count(func(s *Summary) int { return s.Lines })),
	metrics.NewFunc(metrics.MELOC, "Effective Lines of Code", metrics.TypeSize,
		"MLOC without blank lines, comment-only lines, the signature line and block delimiters.",
		count(func(s *Summary) int { return s.EffectiveLines })),
	metrics.NewFunc(metrics.NOP, "Number of Parameters", metrics.TypeSize,
		"Declared parameter count.",
		count(func(s *Summary) int { return s.Parameters })),
	metrics.NewFunc(metrics.NOLV, "Number of Local Variables", metrics.TypeSize,
		"Distinct local-variable declarations.",
		count(func(s *Summary) int { return s.LocalVariables })),
	metrics.NewFunc(metrics.NOTC, "Number of Try-Catch Blocks", metrics.TypeComplexity,
		"Try statements in the body.",
		count(func(s *Summary) int { return s.TryStatements })),
	metrics.NewFunc(metrics.MNOL, "Number of Loops", metrics.TypeComplexity,
		"for, while, foreach and do-while loops.",
		count(func(s *Summary) int { return s.Loops })),
	metrics.NewFunc(metrics.MNOR, "Number of Returns", metrics.TypeComplexity,
		"Return statements.",
		count(func(s *Summary) int { return s.Returns })),
	metrics.NewFunc(metrics.MNOC, "Number of Comparisons", metrics.TypeComplexity,
		"Comparison operators (==, !=, <, >, <=, >=).",
		count(func(s *Summary) int { return s.Comparisons })),
	metrics.NewFunc(metrics.NOMI, "Number of Method Invocations", metrics.TypeCoupling,
		"Invocation expressions, duplicates included.",
		count(func(s *Summary) int { return s.Invocations })),
	metrics.NewFunc(metrics.RFC, "Response for a Member", metrics.TypeCoupling,
		"Distinct project methods invoked.",
		count(func(s *Summary) int { return s.InvokedMethods })),
	metrics.NewFunc(metrics.MNOA, "Number of Assignments", metrics.TypeComplexity,
		"Assignment expressions, compound assignments included.",
		count(func(s *Summary) int { return s.Assignments })),
	metrics.NewFunc(metrics.NONL, "Number of Numeric Literals", metrics.TypeSize,
		"Numeric literal tokens.",
		count(func(s *Summary) int { return s.NumericLiterals })),
	metrics.NewFunc(metrics.NOSL, "Number of String Literals", metrics.TypeSize,
		"String literal tokens.",
		count(func(s *Summary) int { return s.StringLiterals })),
	metrics.NewFunc(metrics.NOMO, "Number of Math Operations", metrics.TypeComplexity,
		"Arithmetic operators (+, -, *, /, %).",
		count(func(s *Summary) int { return s.MathOperators })),
	metrics.NewFunc(metrics.NOPE, "Number of Parenthesized Expressions", metrics.TypeComplexity,
		"Parenthesized sub-expressions.",
		count(func(s *Summary) int { return s.Parenthesized })),
	metrics.NewFunc(metrics.NOLE, "Number of Lambda Expressions", metrics.TypeComplexity,
		"Lambda and anonymous-function expressions.",
		count(func(s *Summary) int { return s.Lambdas })),
	metrics.NewFunc(metrics.MMNB, "Maximum Nested Blocks", metrics.TypeComplexity,
		"Deepest block nesting below the body block; 0 without nested blocks.",
		count(func(s *Summary) int { return s.MaxNestedBlocks })),
	metrics.NewFunc(metrics.NOUW, "Number of Unique Words", metrics.TypeSize,
		"Distinct whitespace-delimited tokens of the member source.",
		count(func(s *Summary) int { return s.UniqueWords })),
)

// Calculate computes every member metric for m.
func Calculate(m *model.Member) metrics.Values {
	return Registry.Compute(Summarize(m))
}
