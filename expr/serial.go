package expr

import (
	"errors"
	"math/big"

	"github.com/oldnick85/func-wander/atom"
)

// ErrInvalidSerialNumber is returned by FromSerialNumber for a negative
// serial number, or when the atom library cannot produce trees beyond the
// nullary ones and the number is out of range.
var ErrInvalidSerialNumber = errors.New("expr: invalid serial number")

// MaxSerialNumber returns the count of canonical trees of depth <= level,
// which is one past the largest serial number of such a tree. Levels below
// zero count zero trees.
//
// With A0/A1/A2 the per-arity library sizes and M the returned count:
//
//	M(0) = A0
//	M(l) = M(l-1) + (M(l-1)-M(l-2))*A1 + M(l-1)*(M(l-1)-M(l-2))*A2
func (n *Node[T]) MaxSerialNumber(level int) *big.Int {
	return maxSerial(n.atoms, level)
}

func maxSerial[T atom.Value](lib *atom.Library[T], level int) *big.Int {
	if level < 0 {
		return new(big.Int)
	}
	a1 := big.NewInt(int64(lib.UnaryCount()))
	a2 := big.NewInt(int64(lib.BinaryCount()))
	prev2 := new(big.Int)                              // M(l-2)
	prev := big.NewInt(int64(lib.NullaryCount()))      // M(l-1)
	for l := 1; l <= level; l++ {
		prev2, prev = prev, nextMaxSerial(prev, prev2, a1, a2)
	}
	return prev
}

// nextMaxSerial computes M(l) from M(l-1) and M(l-2).
func nextMaxSerial(prev, prev2, a1, a2 *big.Int) *big.Int {
	exact := new(big.Int).Sub(prev, prev2) // trees of depth exactly l-1
	m := new(big.Int).Set(prev)
	m.Add(m, new(big.Int).Mul(exact, a1))
	m.Add(m, new(big.Int).Mul(new(big.Int).Mul(prev, exact), a2))
	return m
}

// SerialNumber returns the position of this tree in canonical order. Serial
// numbers are dense: trees of depth <= l occupy exactly [0, M(l)).
func (n *Node[T]) SerialNumber() *big.Int {
	if n.index.Arity == 0 {
		return big.NewInt(int64(n.index.Num))
	}

	level := n.MaxLevel()
	maxPrev := maxSerial(n.atoms, level-1)
	maxPrev2 := maxSerial(n.atoms, level-2)
	exact := new(big.Int).Sub(maxPrev, maxPrev2)
	num := big.NewInt(int64(n.index.Num))

	sn := new(big.Int).Set(maxPrev)
	if n.index.Arity == 1 {
		sn.Add(sn, new(big.Int).Mul(exact, num))
		sn.Add(sn, new(big.Int).Sub(n.left.SerialNumber(), maxPrev2))
		return sn
	}

	a1 := big.NewInt(int64(n.atoms.UnaryCount()))
	sn.Add(sn, new(big.Int).Mul(exact, a1))
	sn.Add(sn, new(big.Int).Mul(new(big.Int).Mul(maxPrev, exact), num))
	rgt := new(big.Int).Sub(n.right.SerialNumber(), maxPrev2)
	sn.Add(sn, new(big.Int).Mul(maxPrev, rgt))
	sn.Add(sn, n.left.SerialNumber())
	return sn
}

// FromSerialNumber reshapes the node into the canonical tree with the given
// serial number, inverting SerialNumber exactly. On error the node is left
// unchanged.
func (n *Node[T]) FromSerialNumber(sn *big.Int) error {
	tmp := n.newChild()
	if err := tmp.fromSerial(sn); err != nil {
		return err
	}
	*n = *tmp
	return nil
}

func (n *Node[T]) fromSerial(sn *big.Int) error {
	if sn.Sign() < 0 {
		return ErrInvalidSerialNumber
	}

	m0 := big.NewInt(int64(n.atoms.NullaryCount()))
	if sn.Cmp(m0) < 0 {
		n.index = atom.Index{Arity: 0, Num: int(sn.Int64())}
		n.left, n.right = nil, nil
		n.ClearCalculated()
		return nil
	}

	// Find the depth bucket: the smallest l with sn < M(l). The tree then
	// has depth exactly l.
	a1 := big.NewInt(int64(n.atoms.UnaryCount()))
	a2 := big.NewInt(int64(n.atoms.BinaryCount()))
	maxPrev2 := new(big.Int) // M(l-2)
	maxPrev := m0            // M(l-1)
	cur := nextMaxSerial(maxPrev, maxPrev2, a1, a2)
	for sn.Cmp(cur) >= 0 {
		if cur.Cmp(maxPrev) == 0 {
			// The library admits no deeper trees.
			return ErrInvalidSerialNumber
		}
		maxPrev2, maxPrev = maxPrev, cur
		cur = nextMaxSerial(maxPrev, maxPrev2, a1, a2)
	}

	rem := new(big.Int).Sub(sn, maxPrev)
	exact := new(big.Int).Sub(maxPrev, maxPrev2)

	unaryRegion := new(big.Int).Mul(exact, a1)
	if rem.Cmp(unaryRegion) < 0 {
		num, childOff := new(big.Int).QuoRem(rem, exact, new(big.Int))
		n.index = atom.Index{Arity: 1, Num: int(num.Int64())}
		n.left = n.newChild()
		n.right = nil
		n.ClearCalculated()
		return n.left.fromSerial(childOff.Add(childOff, maxPrev2))
	}

	rem.Sub(rem, unaryRegion)
	perAtom := new(big.Int).Mul(maxPrev, exact)
	num, r := new(big.Int).QuoRem(rem, perAtom, new(big.Int))
	rgtOff, lft := new(big.Int).QuoRem(r, maxPrev, new(big.Int))

	n.index = atom.Index{Arity: 2, Num: int(num.Int64())}
	n.left = n.newChild()
	n.right = n.newChild()
	n.ClearCalculated()
	if err := n.left.fromSerial(lft); err != nil {
		return err
	}
	return n.right.fromSerial(rgtOff.Add(rgtOff, maxPrev2))
}
