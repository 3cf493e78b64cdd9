package atom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testVar is a named non-constant value source for ordering tests.
type testVar struct {
	name   string
	values []uint16
}

func (v testVar) Name() string     { return v.name }
func (v testVar) Values() []uint16 { return v.values }
func (v testVar) Constant() bool   { return false }

func TestLibraryNullaryOrdering(t *testing.T) {
	lib := NewLibrary[uint16]()
	lib.AddNullary(NewConst[uint16](1, 8))
	lib.AddNullary(NewConst[uint16](2, 8))
	lib.AddNullary(NewArg[uint16](8))
	lib.AddNullary(NewConst[uint16](3, 8))

	require.Equal(t, 4, lib.NullaryCount())

	// Non-constants first, constants keep insertion order after them.
	assert.Equal(t, "X", lib.Nullary(0).Name())
	assert.Equal(t, "1", lib.Nullary(1).Name())
	assert.Equal(t, "2", lib.Nullary(2).Name())
	assert.Equal(t, "3", lib.Nullary(3).Name())
}

func TestLibraryNullaryPrependsVariables(t *testing.T) {
	lib := NewLibrary[uint16]()
	lib.AddNullary(NewConst[uint16](7, 8))
	lib.AddNullary(testVar{name: "A", values: make([]uint16, 8)})
	lib.AddNullary(testVar{name: "B", values: make([]uint16, 8)})

	require.Equal(t, 3, lib.NullaryCount())

	// The most recently added variable comes first.
	assert.Equal(t, "B", lib.Nullary(0).Name())
	assert.Equal(t, "A", lib.Nullary(1).Name())
	assert.Equal(t, "7", lib.Nullary(2).Name())
}

func TestLibraryContains(t *testing.T) {
	lib := NewLibrary[uint16]()
	lib.AddNullary(NewArg[uint16](4))
	lib.AddUnary(NewNot[uint16]())

	assert.True(t, lib.Contains(Index{Arity: 0, Num: 0}))
	assert.True(t, lib.Contains(Index{Arity: 1, Num: 0}))
	assert.False(t, lib.Contains(Index{Arity: 1, Num: 1}))
	assert.False(t, lib.Contains(Index{Arity: 2, Num: 0}))
	assert.False(t, lib.Contains(Index{Arity: 3, Num: 0}))
	assert.False(t, lib.Contains(Index{Arity: 0, Num: -1}))
}

func TestStockAtoms(t *testing.T) {
	x := NewArg[int16](4)
	assert.Equal(t, []int16{0, 1, 2, 3}, x.Values())
	assert.False(t, x.Constant())

	c := NewConst[int16](7, 3)
	assert.Equal(t, []int16{7, 7, 7}, c.Values())
	assert.True(t, c.Constant())
	assert.Equal(t, "7", c.Name())

	not := NewNot[int16]()
	assert.Equal(t, []int16{-1, -2}, not.Calculate([]int16{0, 1}))

	bc := NewBitCount[int16](16)
	assert.Equal(t, []int16{0, 1, 2, 16}, bc.Calculate([]int16{0, 1, 3, -1}))

	sum := NewSum[int16]()
	assert.True(t, sum.Commutative())
	assert.False(t, sum.Idempotent())
	assert.Equal(t, []int16{5}, sum.Calculate([]int16{2}, []int16{3}))

	sub := NewSub[int16]()
	assert.False(t, sub.Commutative())
	assert.Equal(t, []int16{-1}, sub.Calculate([]int16{2}, []int16{3}))

	and := NewAnd[int16]()
	assert.True(t, and.Commutative())
	assert.True(t, and.Idempotent())
	assert.Equal(t, []int16{2}, and.Calculate([]int16{6}, []int16{3}))

	or := NewOr[int16]()
	assert.Equal(t, []int16{7}, or.Calculate([]int16{6}, []int16{3}))

	xor := NewXor[int16]()
	assert.True(t, xor.Idempotent())
	assert.Equal(t, []int16{5}, xor.Calculate([]int16{6}, []int16{3}))

	shr := NewShiftRight[int16]()
	assert.Equal(t, []int16{3, 12, 0}, shr.Calculate([]int16{6, 12, 12}, []int16{1, 0, -2}))

	shl := NewShiftLeft[int16]()
	assert.Equal(t, []int16{12, 0}, shl.Calculate([]int16{6, 6}, []int16{1, 64}))
}
