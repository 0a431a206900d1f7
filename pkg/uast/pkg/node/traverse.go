package node

// Visitor receives enter/exit callbacks during [Walk].
type Visitor interface {
	OnEnter(n *Node, depth int)
	OnExit(n *Node, depth int)
}

// Find returns all nodes in the tree (including root) for which predicate(node) is true.
// Traversal is pre-order. Returns nil if n is nil.
func (targetNode *Node) Find(predicate func(*Node) bool) []*Node {
	if targetNode == nil {
		return nil
	}

	var results []*Node

	targetNode.VisitPreOrder(func(current *Node) {
		if predicate(current) {
			results = append(results, current)
		}
	})

	return results
}

// FindTypes returns all nodes in the tree (including root) with one of the given types.
func (targetNode *Node) FindTypes(nodeTypes ...Type) []*Node {
	return targetNode.Find(func(current *Node) bool {
		return current.HasAnyType(nodeTypes...)
	})
}

// VisitPreOrder visits all nodes in pre-order (root, then children left-to-right).
func (targetNode *Node) VisitPreOrder(fn func(*Node)) {
	if targetNode == nil {
		return
	}

	stack := []*Node{targetNode}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == nil {
			continue
		}

		fn(current)

		for idx := len(current.Children) - 1; idx >= 0; idx-- {
			stack = append(stack, current.Children[idx])
		}
	}
}

// VisitPostOrder visits all nodes in post-order (children left-to-right, then root).
func (targetNode *Node) VisitPostOrder(fn func(*Node)) {
	if targetNode == nil {
		return
	}

	for _, child := range targetNode.Children {
		child.VisitPostOrder(fn)
	}

	fn(targetNode)
}

// Walk traverses the tree depth-first, calling OnEnter before a node's
// children and OnExit after them. The root has depth 0.
func Walk(root *Node, visitor Visitor) {
	if root == nil || visitor == nil {
		return
	}

	walk(root, visitor, 0)
}

func walk(current *Node, visitor Visitor, depth int) {
	visitor.OnEnter(current, depth)

	for _, child := range current.Children {
		if child != nil {
			walk(child, visitor, depth+1)
		}
	}

	visitor.OnExit(current, depth)
}
