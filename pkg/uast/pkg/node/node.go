// Package node provides the canonical UAST node structure consumed by the
// model builder, together with traversal and lookup helpers.
package node

import (
	"slices"
	"strconv"
	"strings"
)

// UAST node type constants.
const (
	UASTFile          = "File"
	UASTNamespace     = "Namespace"
	UASTImport        = "Import"
	UASTClass         = "Class"
	UASTInterface     = "Interface"
	UASTStruct        = "Struct"
	UASTField         = "Field"
	UASTMethod        = "Method"
	UASTConstructor   = "Constructor"
	UASTProperty      = "Property"
	UASTGetter        = "Getter"
	UASTSetter        = "Setter"
	UASTParameter     = "Parameter"
	UASTVariable      = "Variable"
	UASTBlock         = "Block"
	UASTIf            = "If"
	UASTLoop          = "Loop"
	UASTSwitch        = "Switch"
	UASTCase          = "Case"
	UASTReturn        = "Return"
	UASTBreak         = "Break"
	UASTContinue      = "Continue"
	UASTAssignment    = "Assignment"
	UASTCall          = "Call"
	UASTIdentifier    = "Identifier"
	UASTLiteral       = "Literal"
	UASTBinaryOp      = "BinaryOp"
	UASTUnaryOp       = "UnaryOp"
	UASTParenthesized = "Parenthesized"
	UASTLambda        = "Lambda"
	UASTTry           = "Try"
	UASTCatch         = "Catch"
	UASTFinally       = "Finally"
	UASTThrow         = "Throw"
	UASTComment       = "Comment"
)

// Role constants for syntactic and semantic labeling.
const (
	RoleDeclaration = "Declaration"
	RoleReference   = "Reference"
	RoleWrite       = "Write"
	RolePublic      = "Public"
	RolePrivate     = "Private"
	RoleProtected   = "Protected"
	RoleInternal    = "Internal"
	RoleStatic      = "Static"
	RoleConstant    = "Constant"
	RoleReadonly    = "Readonly"
	RoleAbstract    = "Abstract"
	RoleVirtual     = "Virtual"
	RoleOverride    = "Override"
	RoleSealed      = "Sealed"
	RoleAsync       = "Async"
	RoleExtern      = "Extern"
	RolePartial     = "Partial"
	RoleVolatile    = "Volatile"
	RoleNew         = "New"
)

// Well-known property keys.
const (
	PropName     = "name"
	PropType     = "type"
	PropBase     = "base"
	PropPath     = "path"
	PropTarget   = "target"
	PropArity    = "arity"
	PropKind     = "kind"
	PropOperator = "operator"
	PropDefault  = "default"
	PropLanguage = "language"
)

// Loop kinds carried in [PropKind] on Loop nodes.
const (
	LoopFor     = "for"
	LoopWhile   = "while"
	LoopForeach = "foreach"
	LoopDo      = "do"
)

// Literal kinds carried in [PropKind] on Literal nodes.
const (
	LiteralNumber = "number"
	LiteralString = "string"
	LiteralBool   = "bool"
	LiteralNull   = "null"
)

// Role represents a syntactic/semantic label for a node.
type Role string

// Type represents a type label for a node.
type Type string

// Positions represents the line/col offsets for a node. Lines and columns are 1-based.
type Positions struct {
	StartLine uint `json:"start_line,omitempty"`
	StartCol  uint `json:"start_col,omitempty"`
	EndLine   uint `json:"end_line,omitempty"`
	EndCol    uint `json:"end_col,omitempty"`
}

// Node is the canonical UAST node structure.
//
// Fields:
//
//	ID: unique node identifier (optional).
//	Type: node type (e.g., "Class", "Call").
//	Token: source text for declarations, value for leaf nodes.
//	Roles: semantic/syntactic roles, including declaration modifiers.
//	Pos: source code position info (optional).
//	Props: additional properties (name, type, target, ...).
//	Children: child nodes (ordered).
type Node struct {
	ID       string            `json:"id,omitempty"`
	Token    string            `json:"token,omitempty"`
	Type     Type              `json:"type,omitempty"`
	Roles    []Role            `json:"roles,omitempty"`
	Pos      *Positions        `json:"pos,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// New creates a node with the given type, token and properties.
func New(nodeType Type, token string, props map[string]string, roles ...Role) *Node {
	return &Node{Type: nodeType, Token: token, Props: props, Roles: roles}
}

// AddChild appends child nodes to n.
func (targetNode *Node) AddChild(children ...*Node) *Node {
	targetNode.Children = append(targetNode.Children, children...)

	return targetNode
}

// Prop returns the property value for key, or "" when absent.
func (targetNode *Node) Prop(key string) string {
	if targetNode == nil || targetNode.Props == nil {
		return ""
	}

	return targetNode.Props[key]
}

// IntProp returns the property value for key parsed as an integer.
// The second result is false when the property is absent or not a number.
func (targetNode *Node) IntProp(key string) (int, bool) {
	raw := targetNode.Prop(key)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}

	return value, true
}

// Name returns the declared name of the node: the name property if present,
// otherwise the token.
func (targetNode *Node) Name() string {
	if name := targetNode.Prop(PropName); name != "" {
		return name
	}

	if targetNode == nil {
		return ""
	}

	return strings.TrimSpace(targetNode.Token)
}

// HasAnyRole checks if the node has any of the given roles.
func (targetNode *Node) HasAnyRole(roles ...Role) bool {
	if targetNode == nil || len(targetNode.Roles) == 0 {
		return false
	}

	for _, role := range roles {
		if slices.Contains(targetNode.Roles, role) {
			return true
		}
	}

	return false
}

// HasAllRoles checks if the node has all of the given roles.
func (targetNode *Node) HasAllRoles(roles ...Role) bool {
	if targetNode == nil || len(targetNode.Roles) == 0 {
		return false
	}

	for _, role := range roles {
		if !slices.Contains(targetNode.Roles, role) {
			return false
		}
	}

	return true
}

// HasAnyType checks if the node has any of the given types.
func (targetNode *Node) HasAnyType(nodeTypes ...Type) bool {
	if targetNode == nil {
		return false
	}

	return slices.Contains(nodeTypes, targetNode.Type)
}

// ChildrenOfType returns the direct children with one of the given types.
func (targetNode *Node) ChildrenOfType(nodeTypes ...Type) []*Node {
	if targetNode == nil {
		return nil
	}

	var out []*Node

	for _, child := range targetNode.Children {
		if child.HasAnyType(nodeTypes...) {
			out = append(out, child)
		}
	}

	return out
}

// FirstChildOfType returns the first direct child with one of the given types, or nil.
func (targetNode *Node) FirstChildOfType(nodeTypes ...Type) *Node {
	if targetNode == nil {
		return nil
	}

	for _, child := range targetNode.Children {
		if child.HasAnyType(nodeTypes...) {
			return child
		}
	}

	return nil
}
