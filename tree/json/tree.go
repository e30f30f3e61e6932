package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/tosinoni/classification/tree"
)

type jsonTree struct {
	RootID string      `json:"rootID"`
	Nodes  []*jsonNode `json:"nodes"`
}

type jsonNode struct {
	ID         string   `json:"id"`
	ParentID   string   `json:"pId,omitempty"`
	Path       *int     `json:"path,omitempty"`
	SubtreeIDs []string `json:"stIds,omitempty"`
	Feature    *int     `json:"f,omitempty"`
	Class      int      `json:"c,omitempty"`
}

/*
WriteJSONTree takes an io.Writer and the root of a tree and serializes the
tree as JSON onto the writer.
A tree is serialized as a JSON object with the following fields:
  - "rootID": a string with the ID of the root node
  - "nodes": an array with every node of the tree in pre-order. Each node is
    an object with its "id", the "pId" of its parent and its "path" label
    (except for the root), either the feature index "f" for decisions or
    the class label "c" for leaves, and the IDs of its children "stIds" in
    attach order.

An error is returned if the tree cannot be serialized or written.
*/
func WriteJSONTree(w io.Writer, root *tree.Node) error {
	if root == nil {
		return fmt.Errorf("serializing tree as JSON: nil root")
	}
	encoded := make(map[*tree.Node]*jsonNode)
	jt := &jsonTree{}
	root.Traverse(false, func(n *tree.Node, _ int) error {
		jn := &jsonNode{ID: strconv.Itoa(len(jt.Nodes) + 1)}
		if n != root {
			parent := encoded[n.Parent()]
			path := n.PathLabel()
			jn.ParentID = parent.ID
			jn.Path = &path
			parent.SubtreeIDs = append(parent.SubtreeIDs, jn.ID)
		}
		if n.IsLeaf() {
			jn.Class = n.Class()
		} else {
			f := n.Feature()
			jn.Feature = &f
		}
		encoded[n] = jn
		jt.Nodes = append(jt.Nodes, jn)
		return nil
	})
	jt.RootID = encoded[root].ID
	if err := json.NewEncoder(w).Encode(jt); err != nil {
		return fmt.Errorf("serializing tree as JSON: %v", err)
	}
	return nil
}

/*
ReadJSONTree takes an io.Reader and decodes from it a tree serialized by
WriteJSONTree, returning its root. An error is returned if the JSON cannot
be read or does not describe a well-formed tree: unknown or repeated node
IDs, children whose parent ID or path label disagree with the node listing
them, or nodes unreachable from the root.
*/
func ReadJSONTree(r io.Reader) (*tree.Node, error) {
	jt := &jsonTree{}
	if err := json.NewDecoder(r).Decode(jt); err != nil {
		return nil, fmt.Errorf("decoding JSON tree: %v", err)
	}
	if jt.RootID == "" {
		return nil, fmt.Errorf("decoding JSON tree: no root node id available")
	}
	byID := make(map[string]*jsonNode, len(jt.Nodes))
	for _, jn := range jt.Nodes {
		if _, ok := byID[jn.ID]; ok {
			return nil, fmt.Errorf("decoding JSON tree: repeated node id %q", jn.ID)
		}
		byID[jn.ID] = jn
	}
	seen := make(map[string]bool, len(jt.Nodes))
	root, err := decodeNode(jt.RootID, byID, seen)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON tree: %v", err)
	}
	if len(seen) != len(jt.Nodes) {
		return nil, fmt.Errorf("decoding JSON tree: %d nodes unreachable from root", len(jt.Nodes)-len(seen))
	}
	return root, nil
}

func decodeNode(id string, byID map[string]*jsonNode, seen map[string]bool) (*tree.Node, error) {
	jn, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", id)
	}
	if seen[id] {
		return nil, fmt.Errorf("node %q reached twice", id)
	}
	seen[id] = true
	if jn.Feature == nil {
		if len(jn.SubtreeIDs) > 0 {
			return nil, fmt.Errorf("leaf node %q has children", id)
		}
		return tree.NewLeaf(jn.Class), nil
	}
	n := tree.NewDecision(*jn.Feature)
	for _, stID := range jn.SubtreeIDs {
		st, err := decodeNode(stID, byID, seen)
		if err != nil {
			return nil, err
		}
		jst := byID[stID]
		if jst.ParentID != id || jst.Path == nil {
			return nil, fmt.Errorf("node %q listed under %q has parent %q", stID, id, jst.ParentID)
		}
		if err := n.Attach(*jst.Path, st); err != nil {
			return nil, fmt.Errorf("node %q: %v", stID, err)
		}
	}
	return n, nil
}

/*
Marshal returns the JSON serialization of the tree under root as written by
WriteJSONTree.
*/
func Marshal(root *tree.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSONTree(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

/*
Unmarshal takes a slice of bytes with a tree serialized by Marshal or
WriteJSONTree and returns its root.
*/
func Unmarshal(data []byte) (*tree.Node, error) {
	return ReadJSONTree(bytes.NewReader(data))
}
