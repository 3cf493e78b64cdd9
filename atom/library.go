package atom

import (
	"fmt"
	"slices"
)

// Library holds all atoms available to a search, grouped by arity.
//
// Inside the nullary group, non-constant atoms always precede constant ones:
// AddNullary prepends non-constants and appends constants. The canonical
// enumeration order of expression trees depends on this placement.
//
// A Library must not be modified once a search has started; expression nodes
// share it read-only and never own it.
type Library[T Value] struct {
	nullary []Nullary[T]
	unary   []Unary[T]
	binary  []Binary[T]
}

// NewLibrary creates an empty Library.
func NewLibrary[T Value]() *Library[T] {
	return &Library[T]{}
}

// AddNullary adds a value source. Constant atoms append to the end;
// non-constant atoms are prepended, so the most recently added variable
// enumerates first.
func (l *Library[T]) AddNullary(a Nullary[T]) {
	if a.Constant() {
		l.nullary = append(l.nullary, a)
		return
	}
	l.nullary = slices.Insert(l.nullary, 0, a)
}

// AddUnary appends a unary atom.
func (l *Library[T]) AddUnary(a Unary[T]) {
	l.unary = append(l.unary, a)
}

// AddBinary appends a binary atom.
func (l *Library[T]) AddBinary(a Binary[T]) {
	l.binary = append(l.binary, a)
}

// Nullary returns the nullary atom at position num.
func (l *Library[T]) Nullary(num int) Nullary[T] { return l.nullary[num] }

// Unary returns the unary atom at position num.
func (l *Library[T]) Unary(num int) Unary[T] { return l.unary[num] }

// Binary returns the binary atom at position num.
func (l *Library[T]) Binary(num int) Binary[T] { return l.binary[num] }

// NullaryCount returns the number of nullary atoms.
func (l *Library[T]) NullaryCount() int { return len(l.nullary) }

// UnaryCount returns the number of unary atoms.
func (l *Library[T]) UnaryCount() int { return len(l.unary) }

// BinaryCount returns the number of binary atoms.
func (l *Library[T]) BinaryCount() int { return len(l.binary) }

// Count returns the number of atoms of the given arity.
func (l *Library[T]) Count(arity int) int {
	switch arity {
	case 0:
		return len(l.nullary)
	case 1:
		return len(l.unary)
	case 2:
		return len(l.binary)
	default:
		panic(fmt.Sprintf("atom: invalid arity %d", arity))
	}
}

// Name returns the textual form of the atom at idx.
func (l *Library[T]) Name(idx Index) string {
	switch idx.Arity {
	case 0:
		return l.nullary[idx.Num].Name()
	case 1:
		return l.unary[idx.Num].Name()
	case 2:
		return l.binary[idx.Num].Name()
	default:
		panic(fmt.Sprintf("atom: invalid arity %d", idx.Arity))
	}
}

// Contains reports whether idx addresses an existing atom.
func (l *Library[T]) Contains(idx Index) bool {
	if idx.Arity < 0 || idx.Arity > 2 || idx.Num < 0 {
		return false
	}
	return idx.Num < l.Count(idx.Arity)
}
