package expr

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oldnick85/func-wander/atom"
)

// ErrMalformedTree is returned when a persisted tree document is missing a
// required field, mistypes one, or references an atom the library does not
// hold. Wrapped errors carry the offending field.
var ErrMalformedTree = errors.New("expr: malformed tree document")

// treeDoc is the persisted form of one node: {arity, index, name, left?,
// right?}. The name field is informational and ignored on load.
type treeDoc struct {
	Arity int      `json:"arity"`
	Index int      `json:"index"`
	Name  string   `json:"name"`
	Left  *treeDoc `json:"left,omitempty"`
	Right *treeDoc `json:"right,omitempty"`
}

type rawTreeDoc struct {
	Arity *int            `json:"arity"`
	Index *int            `json:"index"`
	Left  json.RawMessage `json:"left"`
	Right json.RawMessage `json:"right"`
}

// MarshalJSON encodes the tree as a recursive document with per-node arity,
// atom index and textual name.
func (n *Node[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.doc())
}

func (n *Node[T]) doc() *treeDoc {
	d := &treeDoc{
		Arity: n.index.Arity,
		Index: n.index.Num,
		Name:  n.atoms.Name(n.index),
	}
	if n.left != nil {
		d.Left = n.left.doc()
	}
	if n.right != nil {
		d.Right = n.right.doc()
	}
	return d
}

// UnmarshalJSON decodes a tree document, validating every node against the
// library. On any violation the node is left unchanged and an error wrapping
// ErrMalformedTree is returned.
func (n *Node[T]) UnmarshalJSON(data []byte) error {
	tmp := n.newChild()
	if err := tmp.fromDoc(data); err != nil {
		return err
	}
	*n = *tmp
	return nil
}

func (n *Node[T]) fromDoc(data []byte) error {
	var raw rawTreeDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedTree, err)
	}
	if raw.Arity == nil {
		return fmt.Errorf("%w: missing field %q", ErrMalformedTree, "arity")
	}
	if raw.Index == nil {
		return fmt.Errorf("%w: missing field %q", ErrMalformedTree, "index")
	}

	idx := atom.Index{Arity: *raw.Arity, Num: *raw.Index}
	if !n.atoms.Contains(idx) {
		return fmt.Errorf("%w: no atom with arity %d index %d", ErrMalformedTree, idx.Arity, idx.Num)
	}
	n.index = idx
	n.left, n.right = nil, nil
	n.ClearCalculated()

	if idx.Arity >= 1 {
		if raw.Left == nil {
			return fmt.Errorf("%w: missing field %q", ErrMalformedTree, "left")
		}
		n.left = n.newChild()
		if err := n.left.fromDoc(raw.Left); err != nil {
			return err
		}
	}
	if idx.Arity == 2 {
		if raw.Right == nil {
			return fmt.Errorf("%w: missing field %q", ErrMalformedTree, "right")
		}
		n.right = n.newChild()
		if err := n.right.fromDoc(raw.Right); err != nil {
			return err
		}
	}
	return nil
}
