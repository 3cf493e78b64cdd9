// Package atom defines the vocabulary of a synthesis run: indivisible
// value-producing operations of arity 0, 1 or 2, and the Library that holds
// them grouped by arity.
//
// Atoms operate on fixed-length sample vectors. Every atom added to one
// Library must produce and consume vectors of the same length; the expression
// engine relies on this and does not re-validate lengths per call.
package atom

// Value is the numeric domain atoms operate on.
type Value interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Index identifies one atom inside a Library by arity and position within the
// corresponding arity group.
type Index struct {
	Arity int
	Num   int
}

// Nullary is a value source: a variable or a constant. Its sample vector is
// fixed at construction time and returned without recomputation.
type Nullary[T Value] interface {
	// Name returns the textual form of the atom (e.g. "X", "42").
	Name() string
	// Values returns the fixed sample vector. Callers must not mutate it.
	Values() []T
	// Constant reports whether the vector holds a single repeated value.
	// Constant nullaries sort after non-constant ones inside a Library.
	Constant() bool
}

// Unary transforms one sample vector into another of the same length.
type Unary[T Value] interface {
	Name() string
	Calculate(arg []T) []T
	// Involutive reports whether applying the atom twice restores the input.
	Involutive() bool
}

// Binary combines two sample vectors element-wise.
type Binary[T Value] interface {
	Name() string
	Calculate(a, b []T) []T
	// Commutative reports whether operand order is irrelevant.
	Commutative() bool
	// Idempotent reports whether equal operands make the atom redundant
	// (e.g. AND(x;x) == x, XOR(x;x) == 0).
	Idempotent() bool
}
