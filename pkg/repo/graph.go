package repo

import (
	"fmt"
	"path"

	"github.com/odvcencio/gat/pkg/object"
)

// maxGraphDepth bounds recursive materialization. Content addressing makes
// cycles structurally impossible, so this is a defensive limit on pathological
// nesting, not cycle detection.
const maxGraphDepth = 512

// Node is one materialized object in a decoded graph. Exactly one of Blob,
// Tree, Commit is non-nil, matching Type. Tree nodes carry one child per
// entry, in entry order; commit nodes carry their tree as the only child,
// with parents left as identifiers so history walks stay shallow.
type Node struct {
	Hash     object.Hash
	Type     object.ObjectType
	Blob     *object.Blob
	Tree     *object.Tree
	Commit   *object.Commit
	Children []*Node
}

// DecodeObject reads the object with the given hash and recursively
// materializes its graph through the store.
func (r *Repo) DecodeObject(h object.Hash) (*Node, error) {
	return r.decodeNode(h, 0)
}

func (r *Repo) decodeNode(h object.Hash, depth int) (*Node, error) {
	if depth > maxGraphDepth {
		return nil, fmt.Errorf("decode %s: %w: graph deeper than %d levels", h, object.ErrDecode, maxGraphDepth)
	}

	objType, payload, err := r.Store.Read(h)
	if err != nil {
		return nil, err
	}

	node := &Node{Hash: h, Type: objType}
	switch objType {
	case object.TypeBlob:
		node.Blob, err = object.UnmarshalBlob(payload)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", h, err)
		}

	case object.TypeTree:
		node.Tree, err = object.UnmarshalTree(payload)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", h, err)
		}
		for _, e := range node.Tree.Entries {
			child, err := r.decodeNode(e.Hash, depth+1)
			if err != nil {
				return nil, fmt.Errorf("decode %s: entry %q: %w", h, e.Name, err)
			}
			if child.Type != e.Type() {
				return nil, &object.TypeMismatchError{Hash: e.Hash, Got: child.Type, Want: e.Type()}
			}
			node.Children = append(node.Children, child)
		}

	case object.TypeCommit:
		node.Commit, err = object.UnmarshalCommit(payload)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", h, err)
		}
		tree, err := r.decodeNode(node.Commit.Tree, depth+1)
		if err != nil {
			return nil, fmt.Errorf("decode %s: tree: %w", h, err)
		}
		if tree.Type != object.TypeTree {
			return nil, &object.TypeMismatchError{Hash: node.Commit.Tree, Got: tree.Type, Want: object.TypeTree}
		}
		node.Children = append(node.Children, tree)
	}

	return node, nil
}

// Walk visits every blob in a materialized tree graph with its slash-joined
// path relative to the graph root.
func (n *Node) Walk(fn func(p string, blob *object.Blob) error) error {
	return n.walk("", fn)
}

func (n *Node) walk(prefix string, fn func(string, *object.Blob) error) error {
	switch n.Type {
	case object.TypeBlob:
		return fn(prefix, n.Blob)
	case object.TypeTree:
		for i, e := range n.Tree.Entries {
			child := n.Children[i]
			if err := child.walk(path.Join(prefix, e.Name), fn); err != nil {
				return err
			}
		}
	case object.TypeCommit:
		for _, child := range n.Children {
			if err := child.walk(prefix, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
