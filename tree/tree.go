package tree

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

const (
	lastConnector  = "|____ "
	innerConnector = "|---- "
	lastIndent     = "      "
	innerIndent    = "|     "
)

// Traverse takes a bottomup boolean and an error-returning function that
// takes a node and its depth (0 for n) as parameters, and goes through the
// subtree under n running the function with every traversed node.
// Traverse will call the function with a parent node before calling it for
// its children if bottomup is false, and call it after its children if
// bottomup is true. Children are visited in attach order.
// If the call to the function returns an error, the traversing is aborted
// and the error is returned.
func (n *Node) Traverse(bottomup bool, f func(*Node, int) error) error {
	return n.traverse(0, bottomup, f)
}

func (n *Node) traverse(depth int, bottomup bool, f func(*Node, int) error) error {
	if !bottomup {
		if err := f(n, depth); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := c.traverse(depth+1, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n, depth)
	}
	return nil
}

/*
Lines returns a sequence that yields, in depth-first pre-order, one line of
text per node of the subtree under n. Each line is indented according to
the node's depth and prefixed with a connector telling whether the node is
the last child of its parent ("|____ ") or not ("|---- "). Non-root nodes
show their path label before their own label.

Lines are produced on demand and the sequence can be ranged over any number
of times, always yielding the same lines for the same tree.
*/
func (n *Node) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		n.lines("", true, true, yield)
	}
}

func (n *Node) lines(prefix string, last, root bool, yield func(string) bool) bool {
	connector := innerConnector
	if last {
		connector = lastConnector
	}
	line := prefix + connector + n.Label()
	if !root {
		line = fmt.Sprintf("%s%s%d: %s", prefix, connector, n.pathLabel, n.Label())
	}
	if !yield(line) {
		return false
	}
	childPrefix := prefix + innerIndent
	if last {
		childPrefix = prefix + lastIndent
	}
	for i, c := range n.children {
		if !c.lines(childPrefix, i == len(n.children)-1, false, yield) {
			return false
		}
	}
	return true
}

/*
Render takes an io.Writer and writes on it the lines of the subtree under n
as produced by Lines, each one terminated by a newline. It returns an error
if writing fails.
*/
func (n *Node) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for line := range n.Lines() {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("rendering tree: %v", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("rendering tree: %v", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("rendering tree: %v", err)
	}
	return nil
}

func (n *Node) String() string {
	var sb strings.Builder
	n.Render(&sb)
	return sb.String()
}

// Size returns the number of nodes in the subtree under n.
func (n *Node) Size() int {
	var size int
	n.Traverse(false, func(*Node, int) error {
		size++
		return nil
	})
	return size
}

// Depth returns the number of edges on the longest path from n to a leaf.
func (n *Node) Depth() int {
	var depth int
	n.Traverse(false, func(_ *Node, d int) error {
		if d > depth {
			depth = d
		}
		return nil
	})
	return depth
}
