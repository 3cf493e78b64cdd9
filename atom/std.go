package atom

import (
	"math/bits"
	"strconv"
)

// Stock atoms for integer bit-twiddling searches. Each nullary atom fixes the
// sample-vector length for the whole library; unary and binary atoms inherit
// the length of their inputs.

// NewArg creates the input variable "X": the identity mapping over the sample
// range [0, n).
func NewArg[T Value](n int) Nullary[T] {
	values := make([]T, n)
	for i := range values {
		values[i] = T(i)
	}
	return &arg[T]{values: values}
}

type arg[T Value] struct {
	values []T
}

func (a *arg[T]) Name() string   { return "X" }
func (a *arg[T]) Values() []T    { return a.values }
func (a *arg[T]) Constant() bool { return false }

// NewConst creates a constant atom whose vector repeats val n times.
func NewConst[T Value](val T, n int) Nullary[T] {
	values := make([]T, n)
	for i := range values {
		values[i] = val
	}
	return &konst[T]{val: val, values: values}
}

type konst[T Value] struct {
	val    T
	values []T
}

func (c *konst[T]) Name() string   { return strconv.FormatInt(int64(c.val), 10) }
func (c *konst[T]) Values() []T    { return c.values }
func (c *konst[T]) Constant() bool { return true }

// NewNot creates the bitwise complement atom.
func NewNot[T Value]() Unary[T] { return not[T]{} }

type not[T Value] struct{}

func (not[T]) Name() string     { return "NOT" }
func (not[T]) Involutive() bool { return true }

func (not[T]) Calculate(arg []T) []T {
	res := make([]T, len(arg))
	for i, v := range arg {
		res[i] = ^v
	}
	return res
}

// NewBitCount creates a population-count atom over the low width bits of each
// sample.
func NewBitCount[T Value](width int) Unary[T] {
	return bitCount[T]{mask: 1<<width - 1}
}

type bitCount[T Value] struct {
	mask uint64
}

func (bitCount[T]) Name() string     { return "BITCOUNT" }
func (bitCount[T]) Involutive() bool { return false }

func (b bitCount[T]) Calculate(arg []T) []T {
	res := make([]T, len(arg))
	for i, v := range arg {
		res[i] = T(bits.OnesCount64(uint64(int64(v)) & b.mask))
	}
	return res
}

// NewSum creates the element-wise addition atom.
func NewSum[T Value]() Binary[T] {
	return binaryFunc[T]{
		name:        "SUM",
		commutative: true,
		fn:          func(a, b T) T { return a + b },
	}
}

// NewSub creates the element-wise subtraction atom.
func NewSub[T Value]() Binary[T] {
	return binaryFunc[T]{
		name: "SUB",
		fn:   func(a, b T) T { return a - b },
	}
}

// NewAnd creates the bitwise AND atom.
func NewAnd[T Value]() Binary[T] {
	return binaryFunc[T]{
		name:        "AND",
		commutative: true,
		idempotent:  true,
		fn:          func(a, b T) T { return a & b },
	}
}

// NewOr creates the bitwise OR atom.
func NewOr[T Value]() Binary[T] {
	return binaryFunc[T]{
		name:        "OR",
		commutative: true,
		idempotent:  true,
		fn:          func(a, b T) T { return a | b },
	}
}

// NewXor creates the bitwise XOR atom. Equal operands cancel to zero, so the
// atom counts as idempotent for symmetry pruning.
func NewXor[T Value]() Binary[T] {
	return binaryFunc[T]{
		name:        "XOR",
		commutative: true,
		idempotent:  true,
		fn:          func(a, b T) T { return a ^ b },
	}
}

// NewShiftRight creates the element-wise right-shift atom. Out-of-range
// shift counts clamp to 64, flushing the value (sign-filling for signed
// types).
func NewShiftRight[T Value]() Binary[T] {
	return binaryFunc[T]{
		name: "SHR",
		fn:   func(a, b T) T { return a >> clampShift(b) },
	}
}

// NewShiftLeft creates the element-wise left-shift atom. Out-of-range shift
// counts clamp to 64, flushing the value to zero.
func NewShiftLeft[T Value]() Binary[T] {
	return binaryFunc[T]{
		name: "SHL",
		fn:   func(a, b T) T { return a << clampShift(b) },
	}
}

func clampShift[T Value](b T) uint {
	n := int64(b)
	if n < 0 {
		return 64
	}
	if n > 64 {
		return 64
	}
	return uint(n)
}

type binaryFunc[T Value] struct {
	name        string
	commutative bool
	idempotent  bool
	fn          func(a, b T) T
}

func (f binaryFunc[T]) Name() string      { return f.name }
func (f binaryFunc[T]) Commutative() bool { return f.commutative }
func (f binaryFunc[T]) Idempotent() bool  { return f.idempotent }

func (f binaryFunc[T]) Calculate(a, b []T) []T {
	res := make([]T, len(a))
	for i := range a {
		res[i] = f.fn(a[i], b[i])
	}
	return res
}
