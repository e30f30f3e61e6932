package tree

import (
	"fmt"
)

/*
Node is a node of a binary decision tree. A node is either a decision,
holding the index of the feature it tests and exactly two children (one for
each path label, 0 and 1), or a leaf holding a resolved class label and no
children.

Nodes are built bottom-up: children are created first and then attached to
their parent, which records on each child the path label leading to it and
a back-reference to itself. The back-reference is only meant for
diagnostics; the tree is owned and traversed from the root down.
*/
type Node struct {
	feature   int
	class     int
	children  []*Node
	parent    *Node
	pathLabel int
}

// NoPath is the path label of nodes that have no parent.
const NoPath = -1

/*
NewDecision takes a feature index and returns a decision node testing that
feature, with no children attached yet.
*/
func NewDecision(feature int) *Node {
	return &Node{feature: feature, pathLabel: NoPath}
}

/*
NewLeaf takes a class label and returns a leaf node resolving to it.
*/
func NewLeaf(class int) *Node {
	return &Node{feature: -1, class: class, pathLabel: NoPath}
}

// IsLeaf returns whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.feature < 0
}

/*
Feature returns the index of the feature tested by a decision node, or -1
for a leaf.
*/
func (n *Node) Feature() int {
	return n.feature
}

/*
Class returns the class label resolved by a leaf node, or 0 for a decision
node.
*/
func (n *Node) Class() int {
	return n.class
}

/*
Children returns the children of the node in the order they were attached.
The returned slice is a copy.
*/
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

/*
Child takes a path label and returns the child attached with it, or nil if
there is none.
*/
func (n *Node) Child(pathLabel int) *Node {
	for _, c := range n.children {
		if c.pathLabel == pathLabel {
			return c
		}
	}
	return nil
}

// Parent returns the node's parent, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// PathLabel returns the label the parent associates with the node, NoPath for the root.
func (n *Node) PathLabel() int {
	return n.pathLabel
}

/*
Attach takes a path label and a node and attaches the node as the child of
n for the given label, setting its parent and path label.

It returns an error if n is a leaf, the label is not 0 or 1, n already has
a child for the label, or child is already attached to some node.
*/
func (n *Node) Attach(pathLabel int, child *Node) error {
	if n.IsLeaf() {
		return fmt.Errorf("attaching child to leaf node %s", n.Label())
	}
	if pathLabel != 0 && pathLabel != 1 {
		return fmt.Errorf("attaching child to node %s: invalid path label %d", n.Label(), pathLabel)
	}
	if child == nil {
		return fmt.Errorf("attaching child to node %s: nil child", n.Label())
	}
	if child.parent != nil {
		return fmt.Errorf("attaching child %s to node %s: already attached to %s", child.Label(), n.Label(), child.parent.Label())
	}
	if n.Child(pathLabel) != nil {
		return fmt.Errorf("attaching child to node %s: path %d already taken", n.Label(), pathLabel)
	}
	child.parent = n
	child.pathLabel = pathLabel
	n.children = append(n.children, child)
	return nil
}

/*
Complete returns an error if any decision node of the subtree under n does
not have exactly two children, one for each path label.
*/
func (n *Node) Complete() error {
	return n.Traverse(false, func(m *Node, _ int) error {
		if m.IsLeaf() {
			return nil
		}
		if len(m.children) != 2 || m.Child(0) == nil || m.Child(1) == nil {
			return fmt.Errorf("decision node %s has %d children, expected paths 0 and 1", m.Label(), len(m.children))
		}
		return nil
	})
}

/*
Label returns the text a node renders as: the class label for leaves and
the feature index for decisions.
*/
func (n *Node) Label() string {
	if n.IsLeaf() {
		return fmt.Sprintf("class %d", n.class)
	}
	return fmt.Sprintf("feature %d", n.feature)
}

/*
Describe returns a one-line diagnostic of the node including its parent
and path label.
*/
func (n *Node) Describe() string {
	if n.parent == nil {
		return fmt.Sprintf("node %s, parent none, path none", n.Label())
	}
	return fmt.Sprintf("node %s, parent %s, path %d", n.Label(), n.parent.Label(), n.pathLabel)
}
