// Package nodetest builds UAST fixtures for tests.
package nodetest

import (
	"strconv"

	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
)

func props(kv ...string) map[string]string {
	out := make(map[string]string, len(kv)/2)

	for idx := 0; idx+1 < len(kv); idx += 2 {
		if kv[idx+1] != "" {
			out[kv[idx]] = kv[idx+1]
		}
	}

	return out
}

func withRoles(n *node.Node, roles []node.Role) *node.Node {
	n.Roles = append(n.Roles, roles...)

	return n
}

// File returns a File root with a declared path.
func File(path string, children ...*node.Node) *node.Node {
	return node.New(node.UASTFile, "", props(node.PropPath, path)).AddChild(children...)
}

// Namespace returns a namespace container.
func Namespace(name string, children ...*node.Node) *node.Node {
	return node.New(node.UASTNamespace, "", props(node.PropName, name)).AddChild(children...)
}

// Import returns an import of a namespace.
func Import(name string) *node.Node {
	return node.New(node.UASTImport, name, nil)
}

// Class returns a class declaration. Source is the class text.
func Class(name, base, source string, roles []node.Role, children ...*node.Node) *node.Node {
	return withRoles(node.New(node.UASTClass, source, props(node.PropName, name, node.PropBase, base)), roles).
		AddChild(children...)
}

// Field returns a field declaration.
func Field(name, typeName string, roles ...node.Role) *node.Node {
	return withRoles(node.New(node.UASTField, "", props(node.PropName, name, node.PropType, typeName)), roles)
}

// Method returns a method declaration. Children are parameters followed by the body.
func Method(name, returnType, source string, roles []node.Role, children ...*node.Node) *node.Node {
	return withRoles(node.New(node.UASTMethod, source, props(node.PropName, name, node.PropType, returnType)), roles).
		AddChild(children...)
}

// Constructor returns a constructor declaration.
func Constructor(name, source string, roles []node.Role, children ...*node.Node) *node.Node {
	return withRoles(node.New(node.UASTConstructor, source, props(node.PropName, name)), roles).
		AddChild(children...)
}

// Property returns a property declaration. With no children it is an auto-implemented accessor.
func Property(name, typeName string, roles []node.Role, children ...*node.Node) *node.Node {
	return withRoles(node.New(node.UASTProperty, "", props(node.PropName, name, node.PropType, typeName)), roles).
		AddChild(children...)
}

// Getter returns a getter with the given body statements.
func Getter(children ...*node.Node) *node.Node {
	return node.New(node.UASTGetter, "", nil).AddChild(children...)
}

// Param returns a parameter declaration.
func Param(name, typeName string) *node.Node {
	return node.New(node.UASTParameter, "", props(node.PropName, name, node.PropType, typeName))
}

// Block returns a block of statements.
func Block(children ...*node.Node) *node.Node {
	return node.New(node.UASTBlock, "", nil).AddChild(children...)
}

// If returns an if statement.
func If(children ...*node.Node) *node.Node {
	return node.New(node.UASTIf, "", nil).AddChild(children...)
}

// Loop returns a loop of the given kind (for, while, foreach, do).
func Loop(kind string, children ...*node.Node) *node.Node {
	return node.New(node.UASTLoop, "", props(node.PropKind, kind)).AddChild(children...)
}

// Switch returns a switch statement.
func Switch(children ...*node.Node) *node.Node {
	return node.New(node.UASTSwitch, "", nil).AddChild(children...)
}

// Case returns a case label.
func Case(children ...*node.Node) *node.Node {
	return node.New(node.UASTCase, "", nil).AddChild(children...)
}

// Default returns a default label.
func Default(children ...*node.Node) *node.Node {
	return node.New(node.UASTCase, "", props(node.PropDefault, "true")).AddChild(children...)
}

// Try returns a try statement.
func Try(children ...*node.Node) *node.Node {
	return node.New(node.UASTTry, "", nil).AddChild(children...)
}

// Catch returns a catch clause.
func Catch(children ...*node.Node) *node.Node {
	return node.New(node.UASTCatch, "", nil).AddChild(children...)
}

// Return returns a return statement.
func Return(children ...*node.Node) *node.Node {
	return node.New(node.UASTReturn, "", nil).AddChild(children...)
}

// Assign returns an assignment with the given operator.
func Assign(operator string, children ...*node.Node) *node.Node {
	return node.New(node.UASTAssignment, "", props(node.PropOperator, operator)).AddChild(children...)
}

// Call returns an invocation of target.name with the given arity.
func Call(target, name string, arity int, children ...*node.Node) *node.Node {
	return node.New(node.UASTCall, "", props(node.PropName, name, node.PropTarget, target,
		node.PropArity, strconv.Itoa(arity))).AddChild(children...)
}

// Ref returns a field or property access of target.name.
func Ref(target, name string) *node.Node {
	return node.New(node.UASTIdentifier, name, props(node.PropName, name, node.PropTarget, target), node.RoleReference)
}

// Ident returns a plain identifier that is not a member access.
func Ident(name string) *node.Node {
	return node.New(node.UASTIdentifier, name, nil)
}

// Var returns a local variable declaration.
func Var(name, typeName string, children ...*node.Node) *node.Node {
	return node.New(node.UASTVariable, "", props(node.PropName, name, node.PropType, typeName), node.RoleDeclaration).
		AddChild(children...)
}

// Number returns a numeric literal.
func Number(value string) *node.Node {
	return node.New(node.UASTLiteral, value, props(node.PropKind, node.LiteralNumber))
}

// String returns a string literal.
func String(value string) *node.Node {
	return node.New(node.UASTLiteral, value, props(node.PropKind, node.LiteralString))
}

// BinOp returns a binary expression.
func BinOp(operator string, left, right *node.Node) *node.Node {
	return node.New(node.UASTBinaryOp, "", props(node.PropOperator, operator)).AddChild(left, right)
}

// Paren returns a parenthesized expression.
func Paren(inner *node.Node) *node.Node {
	return node.New(node.UASTParenthesized, "", nil).AddChild(inner)
}

// Lambda returns a lambda expression.
func Lambda(children ...*node.Node) *node.Node {
	return node.New(node.UASTLambda, "", nil).AddChild(children...)
}

// Roles is shorthand for a role list.
func Roles(roles ...node.Role) []node.Role { return roles }
