package expr

import (
	"fmt"

	"github.com/oldnick85/func-wander/atom"
)

// InitDepth reshapes the node into the minimal skeleton of the requested
// depth: a right-leaning chain of the first unary atom ending in the first
// nullary atom. Requires at least one nullary atom, and one unary atom when
// maxDepth > 0.
func (n *Node[T]) InitDepth(maxDepth int) {
	n.initDepth(maxDepth, 0)
}

func (n *Node[T]) initDepth(maxDepth, cur int) {
	if cur > maxDepth {
		panic(fmt.Sprintf("expr: init depth %d below %d", maxDepth, cur))
	}
	n.right = nil
	if cur == maxDepth {
		n.left = nil
		n.index = atom.Index{Arity: 0, Num: 0}
		return
	}
	n.left = n.newChild()
	n.left.initDepth(maxDepth, cur+1)
	n.index = atom.Index{Arity: 1, Num: 0}
}

// Iterate advances the node to the next distinct tree in canonical order,
// bounded by maxDepth. It returns false once the space up to maxDepth is
// exhausted; the tree is left unchanged in that case.
//
// Canonical order at a given depth budget: nullary atoms by index, then
// unary trees (child first, then atom index), then binary trees (left child
// sweeps its whole depth range while the right child is held to exactly
// depth-1), then one depth level deeper. Candidates rejected by the
// configured pruning modes are skipped, not surfaced.
func (n *Node[T]) Iterate(maxDepth int) bool {
	return n.iterate(maxDepth, 0)
}

func (n *Node[T]) iterate(maxDepth, cur int) bool {
	for {
		if !n.iterateRaw(maxDepth, cur) {
			return false
		}
		n.ClearCalculated()
		if n.index.Arity == 0 {
			// Leaves terminate recursion and are never filtered.
			return true
		}
		if n.opts.SkipSymmetric && n.index.Arity == 2 && n.symmetricDuplicate() {
			// Arity transitions can land on a violating pair directly.
			continue
		}
		if !n.opts.SkipConstant {
			return true
		}
		if !n.Constant() {
			n.Calculate(true)
			if n.min != n.max {
				return true
			}
		}
	}
}

// symmetricDuplicate reports whether this binary node is the mirror of an
// already-enumerated tree: a commutative atom with left serial above right,
// or equal serials on an idempotent atom.
func (n *Node[T]) symmetricDuplicate() bool {
	b := n.atoms.Binary(n.index.Num)
	if !b.Commutative() {
		return false
	}
	c := n.left.SerialNumber().Cmp(n.right.SerialNumber())
	return c > 0 || (c == 0 && b.Idempotent())
}

func (n *Node[T]) iterateRaw(maxDepth, cur int) bool {
	nextDepth := cur + 1
	curMaxDepth := cur + n.MaxLevel()

	var ok bool
	switch n.index.Arity {
	case 0:
		ok = n.iterateNullary()
	case 1:
		ok = n.iterateUnary(curMaxDepth, nextDepth)
	default:
		ok = n.iterateBinary(curMaxDepth, nextDepth)
	}

	if !ok && curMaxDepth < maxDepth {
		// Local space exhausted but the global bound allows one more
		// level: restart one level deeper instead of signaling
		// exhaustion.
		n.initDepth(curMaxDepth+1, cur)
		ok = true
	}
	return ok
}

// iterateNullary advances through the nullary atoms. A leaf never grows in
// place; growing happens through the depth restart in iterateRaw.
func (n *Node[T]) iterateNullary() bool {
	if n.lastAtom() {
		return false
	}
	n.index.Num++
	return true
}

func (n *Node[T]) iterateUnary(maxDepth, nextDepth int) bool {
	ok := n.left.iterate(maxDepth, nextDepth)
	if ok && n.opts.SkipConstant && n.left.Arity() == 0 && n.left.Constant() {
		ok = false
	}
	if !ok {
		if !n.lastAtom() {
			n.nextArity1()
			n.left.initDepth(maxDepth, nextDepth)
		} else if n.atoms.Count(2) > 0 {
			n.nextArity2()
			n.right.initDepth(maxDepth, nextDepth)
		} else {
			return false
		}
	}
	return true
}

func (n *Node[T]) iterateBinary(maxDepth, nextDepth int) bool {
	ok := n.left.iterate(maxDepth, nextDepth)
	if ok && n.opts.SkipConstant &&
		n.left.Arity() == 0 && n.left.Constant() &&
		n.right.Arity() == 0 && n.right.Constant() {
		ok = false
	}
	if ok && n.opts.SkipSymmetric && n.symmetricDuplicate() {
		// The left range above the right serial is all mirrors; treat it
		// as exhausted and advance the right child.
		ok = false
	}
	if !ok {
		if !n.right.iterate(maxDepth, nextDepth) {
			if n.lastAtom() {
				return false
			}
			n.nextArity2()
			n.right.initDepth(maxDepth, nextDepth)
		} else {
			// Right advanced: restart left from serial zero.
			n.left = n.newChild()
		}
	}
	return true
}

func (n *Node[T]) lastAtom() bool {
	return n.index.Num+1 >= n.atoms.Count(n.index.Arity)
}

func (n *Node[T]) nextArity1() {
	if n.index.Arity != 1 {
		n.index = atom.Index{Arity: 1, Num: 0}
	} else {
		n.index.Num++
	}
	n.left = n.newChild()
	n.right = nil
}

func (n *Node[T]) nextArity2() {
	if n.index.Arity != 2 {
		n.index = atom.Index{Arity: 2, Num: 0}
	} else {
		n.index.Num++
	}
	n.left = n.newChild()
	n.right = n.newChild()
}
