package builder

import (
	"errors"
	"strings"

	"github.com/Sumatoshi-tech/smellscope/pkg/model"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast"
	"github.com/Sumatoshi-tech/smellscope/pkg/uast/pkg/node"
)

// Declaration errors.
var (
	ErrNilRoot        = errors.New("file has no syntax tree")
	ErrUnnamedClass   = errors.New("class declaration has no name")
	ErrUnnamedMember  = errors.New("member declaration has no name")
	ErrDuplicateClass = errors.New("class declared more than once")
)

//nolint:gochecknoglobals // read-only lookup.
var roleModifiers = map[node.Role]string{
	node.RolePublic:    model.Public,
	node.RolePrivate:   model.Private,
	node.RoleProtected: model.Protected,
	node.RoleInternal:  model.Internal,
	node.RoleStatic:    model.Static,
	node.RoleConstant:  model.Const,
	node.RoleReadonly:  model.Readonly,
	node.RoleVolatile:  model.Volatile,
	node.RoleAbstract:  model.Abstract,
	node.RoleVirtual:   model.Virtual,
	node.RoleOverride:  model.Override,
	node.RoleSealed:    model.Sealed,
	node.RoleNew:       model.New,
	node.RoleAsync:     model.Async,
	node.RoleExtern:    model.Extern,
	node.RolePartial:   model.Partial,
}

// scope is the declaration context while walking a file.
type scope struct {
	namespace string
	imports   []string
	outer     *model.Class
}

// declarer runs the declaration pass over one file.
type declarer struct {
	path    string
	classes []*model.Class
}

// declareFile builds the classes of one file from local syntax only. Inner
// classes are returned after their enclosing class.
func declareFile(file uast.File) ([]*model.Class, error) {
	if file.Root == nil {
		return nil, ErrNilRoot
	}

	d := &declarer{path: file.Path}
	if err := d.container(file.Root, scope{}); err != nil {
		return nil, err
	}

	return d.classes, nil
}

// container walks a File or Namespace body.
func (d *declarer) container(n *node.Node, sc scope) error {
	sc.imports = append(append([]string(nil), sc.imports...), importsOf(n)...)

	for _, child := range n.Children {
		switch child.Type {
		case node.UASTNamespace:
			inner := sc
			inner.namespace = joinName(sc.namespace, child.Name())

			if err := d.container(child, inner); err != nil {
				return err
			}
		case node.UASTClass, node.UASTStruct, node.UASTInterface:
			if _, err := d.class(child, sc); err != nil {
				return err
			}
		}
	}

	return nil
}

func importsOf(n *node.Node) []string {
	var out []string

	for _, imp := range n.ChildrenOfType(node.UASTImport) {
		if name := imp.Name(); name != "" {
			out = append(out, name)
		}
	}

	return out
}

func (d *declarer) class(n *node.Node, sc scope) (*model.Class, error) {
	name := n.Prop(node.PropName)
	if name == "" {
		return nil, ErrUnnamedClass
	}

	c := &model.Class{
		Name:       name,
		Namespace:  sc.namespace,
		Path:       d.path,
		SourceCode: n.Token,
		Modifiers:  modifiersOf(n),
		BaseName:   strings.TrimSpace(n.Prop(node.PropBase)),
		Imports:    sc.imports,
		Outer:      sc.outer,
	}

	if sc.outer != nil {
		c.FullName = sc.outer.FullName + "." + name
	} else {
		c.FullName = joinName(sc.namespace, name)
	}

	d.classes = append(d.classes, c)

	for _, child := range n.Children {
		switch child.Type {
		case node.UASTField:
			fieldName := child.Prop(node.PropName)
			if fieldName == "" {
				continue
			}

			c.Fields = append(c.Fields, &model.Field{
				Name:      fieldName,
				Type:      child.Prop(node.PropType),
				Modifiers: modifiersOf(child),
				Parent:    c,
			})
		case node.UASTMethod, node.UASTConstructor, node.UASTProperty:
			m, err := declareMember(child, c)
			if err != nil {
				return nil, err
			}

			c.Members = append(c.Members, m)
		case node.UASTClass, node.UASTStruct, node.UASTInterface:
			inner := sc
			inner.outer = c

			innerClass, err := d.class(child, inner)
			if err != nil {
				return nil, err
			}

			c.InnerClasses = append(c.InnerClasses, innerClass)
		}
	}

	return c, nil
}

func declareMember(n *node.Node, owner *model.Class) (*model.Member, error) {
	m := &model.Member{
		Name:       n.Prop(node.PropName),
		Modifiers:  modifiersOf(n),
		SourceCode: n.Token,
		ReturnType: n.Prop(node.PropType),
		Parent:     owner,
		Syntax:     n,
	}

	switch n.Type {
	case node.UASTConstructor:
		m.Kind = model.MemberConstructor
		m.ReturnType = ""

		if m.Name == "" {
			m.Name = owner.Name
		}
	case node.UASTProperty:
		m.Kind = model.MemberProperty
		m.FieldDefining = isAutoAccessor(n)
	default:
		m.Kind = model.MemberMethod
	}

	if m.Name == "" {
		return nil, ErrUnnamedMember
	}

	for _, p := range n.ChildrenOfType(node.UASTParameter) {
		m.Params = append(m.Params, model.Parameter{Name: p.Prop(node.PropName), Type: p.Prop(node.PropType)})
	}

	collectSites(n, m)

	return m, nil
}

// isAutoAccessor reports whether a property has no statements: its subtree
// holds only getters, setters and empty blocks.
func isAutoAccessor(n *node.Node) bool {
	for _, child := range n.Children {
		if child.Type == node.UASTParameter {
			continue
		}

		auto := true

		child.VisitPreOrder(func(desc *node.Node) {
			switch desc.Type {
			case node.UASTGetter, node.UASTSetter:
			case node.UASTBlock:
				if len(desc.Children) > 0 {
					auto = false
				}
			default:
				auto = false
			}
		})

		if !auto {
			return false
		}
	}

	return true
}

// collectSites records reference sites and local variables in body order.
// Lambda parameters hide unqualified names inside the lambda body.
func collectSites(n *node.Node, m *model.Member) {
	collectFrom(n, m, nil)
}

func collectFrom(current *node.Node, m *model.Member, hidden map[string]bool) {
	if current == nil {
		return
	}

	switch current.Type {
	case node.UASTLambda:
		hidden = withLambdaParams(current, hidden)
	case node.UASTIdentifier:
		if !current.HasAnyRole(node.RoleReference) {
			break
		}

		name := current.Name()
		target := current.Prop(node.PropTarget)

		if name != "" && (target != "" || !hidden[name]) {
			m.Sites = append(m.Sites, model.Reference{Kind: model.RefAccess, Name: name, Target: target})
		}
	case node.UASTCall:
		name := current.Prop(node.PropName)
		if name == "" {
			break
		}

		arity, ok := current.IntProp(node.PropArity)
		if !ok {
			arity = -1
		}

		m.Sites = append(m.Sites, model.Reference{
			Kind:   model.RefCall,
			Name:   name,
			Target: current.Prop(node.PropTarget),
			Arity:  arity,
		})
	case node.UASTVariable:
		if current.HasAnyRole(node.RoleDeclaration) {
			m.Variables = append(m.Variables, model.LocalVariable{
				Name: current.Prop(node.PropName),
				Type: current.Prop(node.PropType),
			})
		}
	}

	for _, child := range current.Children {
		collectFrom(child, m, hidden)
	}
}

// withLambdaParams returns hidden extended by the parameter names of lambda.
// The input set is never modified.
func withLambdaParams(lambda *node.Node, hidden map[string]bool) map[string]bool {
	params := lambda.ChildrenOfType(node.UASTParameter)
	if len(params) == 0 {
		return hidden
	}

	out := make(map[string]bool, len(hidden)+len(params))
	for name := range hidden {
		out[name] = true
	}

	for _, p := range params {
		if name := p.Prop(node.PropName); name != "" {
			out[name] = true
		}
	}

	return out
}

func modifiersOf(n *node.Node) model.Modifiers {
	var mods model.Modifiers

	for _, role := range n.Roles {
		if value, ok := roleModifiers[role]; ok && !mods.Has(value) {
			mods = append(mods, model.NewModifier(value))
		}
	}

	return mods
}

func joinName(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}
