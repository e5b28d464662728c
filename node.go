package bestfirst

import "github.com/pdrpinto/bestfirst/internal"

// SearchNode is a node of the search tree. It stores the state reached, the
// action that reached it and the parent it was expanded from. Nodes are never
// modified after construction, so parent chains may be shared freely.
type SearchNode[S comparable, A any] struct {
	parent *SearchNode[S, A]
	state  S
	action A
	depth  int
}

// NewRootNode creates a node without parent for the initial state.
func NewRootNode[S comparable, A any](state S) *SearchNode[S, A] {
	return &SearchNode[S, A]{state: state}
}

// NewChildNode creates the node reached from parent by action.
func NewChildNode[S comparable, A any](parent *SearchNode[S, A], action A, state S) *SearchNode[S, A] {
	return &SearchNode[S, A]{parent: parent, state: state, action: action, depth: parent.depth + 1}
}

func (n *SearchNode[S, A]) Parent() *SearchNode[S, A] { return n.parent }
func (n *SearchNode[S, A]) State() S                  { return n.state }
func (n *SearchNode[S, A]) IsRoot() bool              { return n.parent == nil }

// Action returns the action that produced this node. It is the zero value for the root.
func (n *SearchNode[S, A]) Action() A { return n.action }

// Depth is the number of actions between the root and this node.
func (n *SearchNode[S, A]) Depth() int { return n.depth }

// Backtrack returns the plan that advances the root ancestor of endNode to endNode.
func Backtrack[S comparable, A any](endNode *SearchNode[S, A]) Plan[A] {
	return internal.ReconstructPath(
		endNode,
		func(node *SearchNode[S, A]) (*SearchNode[S, A], bool) { return node.parent, node.parent != nil },
		func(node *SearchNode[S, A]) A { return node.action },
	)
}
