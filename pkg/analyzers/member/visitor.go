package member

import (
	"strings"
	"unicode"

	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
)

// Counts holds the syntactic counts of one member body.
type Counts struct {
	IfStatements     int
	Loops            int
	DoLoops          int
	CaseLabels       int
	CatchClauses     int
	LogicalOperators int
	TryStatements    int
	Returns          int
	Comparisons      int
	Invocations      int
	Assignments      int
	NumericLiterals  int
	StringLiterals   int
	MathOperators    int
	Parenthesized    int
	Lambdas          int
	MaxNestedBlocks  int
	LocalVariables   int
}

// bodyVisitor implements [node.Visitor] over a single member subtree.
type bodyVisitor struct {
	counts     Counts
	blockDepth int
	skipDepth  int
}

func newBodyVisitor() *bodyVisitor {
	return &bodyVisitor{}
}

// OnEnter is called when entering a node during traversal.
func (v *bodyVisitor) OnEnter(n *node.Node, depth int) {
	if depth > 0 && isTypeDeclaration(n) {
		v.skipDepth++
	}

	if v.skipDepth > 0 {
		return
	}

	v.count(n)

	if n.Type == node.UASTBlock {
		// The outermost block of the body sits at depth 0.
		v.counts.MaxNestedBlocks = max(v.counts.MaxNestedBlocks, v.blockDepth)
		v.blockDepth++
	}
}

// OnExit is called when exiting a node during traversal.
func (v *bodyVisitor) OnExit(n *node.Node, depth int) {
	if depth > 0 && isTypeDeclaration(n) {
		v.skipDepth--

		return
	}

	if v.skipDepth == 0 && n.Type == node.UASTBlock {
		v.blockDepth--
	}
}

func (v *bodyVisitor) count(n *node.Node) {
	switch n.Type {
	case node.UASTIf:
		v.counts.IfStatements++
	case node.UASTLoop:
		v.counts.Loops++

		if n.Prop(node.PropKind) == node.LoopDo {
			v.counts.DoLoops++
		}
	case node.UASTCase:
		if !isDefaultCase(n) {
			v.counts.CaseLabels++
		}
	case node.UASTCatch:
		v.counts.CatchClauses++
	case node.UASTTry:
		v.counts.TryStatements++
	case node.UASTReturn:
		v.counts.Returns++
	case node.UASTCall:
		v.counts.Invocations++
	case node.UASTAssignment:
		v.counts.Assignments++
	case node.UASTParenthesized:
		v.counts.Parenthesized++
	case node.UASTLambda:
		v.counts.Lambdas++
	case node.UASTLiteral:
		switch n.Prop(node.PropKind) {
		case node.LiteralNumber:
			v.counts.NumericLiterals++
		case node.LiteralString:
			v.counts.StringLiterals++
		}
	case node.UASTVariable:
		if n.HasAnyRole(node.RoleDeclaration) {
			if n.Prop(node.PropName) != "" {
				v.counts.LocalVariables++
			}
		}
	case node.UASTBinaryOp:
		v.countOperator(binaryOperator(n))
	}
}

func (v *bodyVisitor) countOperator(op string) {
	switch op {
	case "&&", "||", "and", "or", "AND", "OR":
		v.counts.LogicalOperators++
	case "==", "!=", "<", ">", "<=", ">=":
		v.counts.Comparisons++
	case "+", "-", "*", "/", "%":
		v.counts.MathOperators++
	}
}

func isTypeDeclaration(n *node.Node) bool {
	return n.HasAnyType(node.UASTClass, node.UASTStruct, node.UASTInterface)
}

// binaryOperator reads the operator from the operator property, falling back to the token.
func binaryOperator(n *node.Node) string {
	if op := normalizeOperatorText(n.Prop(node.PropOperator)); op != "" {
		return op
	}

	return normalizeOperatorText(n.Token)
}

func normalizeOperatorText(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, raw)
}

func isDefaultCase(caseNode *node.Node) bool {
	if caseNode.Prop(node.PropDefault) == "true" {
		return true
	}

	token := strings.TrimSpace(strings.ToLower(caseNode.Token))

	return token == "default" || strings.HasPrefix(token, "default:")
}
