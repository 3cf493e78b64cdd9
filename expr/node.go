// Package expr implements the expression-tree enumeration engine.
//
// A Node is one node of a mutable expression tree over an atom.Library. The
// same Node value is reshaped in place by Iterate, visiting every canonical
// tree up to a depth bound exactly once, in a fixed order. Each canonical
// tree has an exact integer serial number; SerialNumber and FromSerialNumber
// form a bijection between trees and the dense range [0, MaxSerialNumber).
package expr

import (
	"fmt"
	"strings"

	"github.com/oldnick85/func-wander/atom"
)

// Options toggles the enumeration pruning modes. Both are static search
// configuration: every node of one tree shares the same Options.
type Options struct {
	// SkipConstant rejects candidates whose output vector is constant
	// across all inputs. Bare leaves are exempt.
	SkipConstant bool
	// SkipSymmetric rejects mirror duplicates of commutative binary atoms
	// by requiring left serial <= right serial (strictly < for idempotent
	// atoms).
	SkipSymmetric bool
}

// WithSkipConstant enables constant-candidate pruning.
func WithSkipConstant() func(*Options) {
	return func(o *Options) { o.SkipConstant = true }
}

// WithSkipSymmetric enables commutative-duplicate pruning.
func WithSkipSymmetric() func(*Options) {
	return func(o *Options) { o.SkipSymmetric = true }
}

// Node is one node of an expression tree. A fresh Node is the first nullary
// atom (serial number zero). Nodes exclusively own their children; the atom
// library is shared and read-only.
//
// Node is not safe for concurrent use.
type Node[T atom.Value] struct {
	atoms *atom.Library[T]
	opts  Options
	index atom.Index
	left  *Node[T]
	right *Node[T]

	// Evaluation cache: the last computed output vector and its extrema.
	values   []T
	min, max T
}

// New creates a Node over atoms, shaped as the first nullary atom.
func New[T atom.Value](atoms *atom.Library[T], optFns ...func(*Options)) *Node[T] {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Node[T]{atoms: atoms, opts: opts}
}

func (n *Node[T]) newChild() *Node[T] {
	return &Node[T]{atoms: n.atoms, opts: n.opts}
}

// Arity returns the arity of this node's atom (0, 1 or 2).
func (n *Node[T]) Arity() int { return n.index.Arity }

// Index returns the atom index of this node.
func (n *Node[T]) Index() atom.Index { return n.index }

// Left returns the first child, or nil for leaves.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right returns the second child, or nil unless arity is 2.
func (n *Node[T]) Right() *Node[T] { return n.right }

// Clone returns a deep copy of the tree. The evaluation cache is not copied.
func (n *Node[T]) Clone() *Node[T] {
	c := n.newChild()
	c.index = n.index
	if n.left != nil {
		c.left = n.left.Clone()
	}
	if n.right != nil {
		c.right = n.right.Clone()
	}
	return c
}

// Equal reports whether both trees are structurally identical: same shape
// and same atom indices. The libraries themselves are not compared, so trees
// over independently built but identically laid-out libraries are equal;
// restoring a snapshot into a task with its own library copy relies on this.
func (n *Node[T]) Equal(other *Node[T]) bool {
	if other == nil {
		return false
	}
	if n.index != other.index {
		return false
	}
	if (n.left == nil) != (other.left == nil) || (n.right == nil) != (other.right == nil) {
		return false
	}
	if n.left != nil && !n.left.Equal(other.left) {
		return false
	}
	if n.right != nil && !n.right.Equal(other.right) {
		return false
	}
	return true
}

// FunctionsCount returns the number of function applications (non-leaf
// nodes) in the tree.
func (n *Node[T]) FunctionsCount() int {
	switch n.index.Arity {
	case 0:
		return 0
	case 1:
		return n.left.FunctionsCount() + 1
	default:
		return n.left.FunctionsCount() + n.right.FunctionsCount() + 1
	}
}

// MaxLevel returns the height of the tree; a leaf has height zero.
func (n *Node[T]) MaxLevel() int {
	switch n.index.Arity {
	case 0:
		return 0
	case 1:
		return n.left.MaxLevel() + 1
	default:
		return max(n.left.MaxLevel(), n.right.MaxLevel()) + 1
	}
}

// MinLevel returns the depth of the shallowest leaf.
func (n *Node[T]) MinLevel() int {
	switch n.index.Arity {
	case 0:
		return 0
	case 1:
		return n.left.MinLevel() + 1
	default:
		return min(n.left.MinLevel(), n.right.MinLevel()) + 1
	}
}

// UniqueSerials records the serial numbers of every function application in
// the tree (leaves excluded) into uniq, keyed by decimal form.
func (n *Node[T]) UniqueSerials(uniq map[string]struct{}) {
	if n.index.Arity == 0 {
		return
	}
	n.left.UniqueSerials(uniq)
	if n.right != nil {
		n.right.UniqueSerials(uniq)
	}
	uniq[n.SerialNumber().String()] = struct{}{}
}

// Calculate returns the output vector of the tree, computing it bottom-up and
// caching the result. With force the node recomputes even when cached;
// children still serve their caches. Callers must not mutate the result.
func (n *Node[T]) Calculate(force bool) []T {
	n.checkInvariants()
	if len(n.values) == 0 || force {
		switch n.index.Arity {
		case 0:
			n.values = n.atoms.Nullary(n.index.Num).Values()
		case 1:
			n.values = n.atoms.Unary(n.index.Num).Calculate(n.left.Calculate(false))
		default:
			n.values = n.atoms.Binary(n.index.Num).Calculate(n.left.Calculate(false), n.right.Calculate(false))
		}
		n.min, n.max = n.values[0], n.values[0]
		for _, v := range n.values[1:] {
			if v < n.min {
				n.min = v
			}
			if v > n.max {
				n.max = v
			}
		}
	}
	return n.values
}

// ClearCalculated drops this node's cached output vector. Children keep
// theirs.
func (n *Node[T]) ClearCalculated() { n.values = nil }

// Constant reports whether the tree is structurally constant: every leaf is
// a constant atom. This is a conservative approximation; value-level
// constants such as SUB(X;X) are not detected.
func (n *Node[T]) Constant() bool {
	switch n.index.Arity {
	case 0:
		return n.atoms.Nullary(n.index.Num).Constant()
	case 1:
		return n.left.Constant()
	default:
		return n.left.Constant() && n.right.Constant()
	}
}

// String renders the tree as nested applications, e.g. "AND(X;NOT(1))".
func (n *Node[T]) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node[T]) render(b *strings.Builder) {
	b.WriteString(n.atoms.Name(n.index))
	switch n.index.Arity {
	case 0:
	case 1:
		b.WriteByte('(')
		n.left.render(b)
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		n.left.render(b)
		b.WriteByte(';')
		n.right.render(b)
		b.WriteByte(')')
	}
}

func (n *Node[T]) checkInvariants() {
	wantLeft := n.index.Arity >= 1
	wantRight := n.index.Arity == 2
	if (n.left != nil) != wantLeft || (n.right != nil) != wantRight {
		panic(fmt.Sprintf("expr: arity %d node with children (%t,%t)",
			n.index.Arity, n.left != nil, n.right != nil))
	}
}
