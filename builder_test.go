package funcwander

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldnick85/func-wander/atom"
	"github.com/oldnick85/func-wander/persist"
	"github.com/oldnick85/func-wander/target"
)

func testLibrary() *atom.Library[uint16] {
	lib := atom.NewLibrary[uint16]()
	lib.AddNullary(atom.NewArg[uint16](64))
	lib.AddNullary(atom.NewConst[uint16](1, 64))
	lib.AddUnary(atom.NewNot[uint16]())
	lib.AddBinary(atom.NewAnd[uint16]())
	return lib
}

func testTarget() *target.TableTarget[uint16] {
	values := make([]uint16, 64)
	for i := range values {
		values[i] = ^uint16(i)
	}
	return target.NewTableTarget(values)
}

func TestBuilderDefaults(t *testing.T) {
	task, err := Wander(testLibrary(), testTarget()).
		Logger(NoopLogger()).
		Build()
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, uint64(0), task.Count())
}

func TestBuilderValidation(t *testing.T) {
	_, err := Wander[uint16](nil, testTarget()).Build()
	assert.ErrorIs(t, err, ErrNilLibrary)

	_, err = Wander(testLibrary(), nil).Build()
	assert.ErrorIs(t, err, ErrNilTarget)

	_, err = Wander(testLibrary(), testTarget()).MaxBest(-1).Build()
	assert.Error(t, err)
}

func TestBuilderIsImmutable(t *testing.T) {
	base := Wander(testLibrary(), testTarget()).Logger(NoopLogger())
	deep := base.MaxDepth(5)

	shallow, err := base.Build()
	require.NoError(t, err)
	deeper, err := deep.Build()
	require.NoError(t, err)

	// Different depth bounds mean different search space sizes.
	assert.NotEqual(t,
		shallow.Status().MaxSerialNumber.String(),
		deeper.Status().MaxSerialNumber.String(),
	)
}

func TestBuilderEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()

	task, err := Wander(testLibrary(), testTarget()).
		MaxDepth(2).
		MaxBest(4).
		Logger(NoopLogger()).
		Autosave(store, "e2e.fws", time.Millisecond).
		Build()
	require.NoError(t, err)

	require.NoError(t, task.Run(ctx))
	require.NoError(t, task.Wait())
	require.True(t, task.Done())

	best := task.Best()
	require.NotEmpty(t, best)
	// NOT(X) reproduces the complement target exactly.
	assert.Equal(t, "NOT(X)", best[0].String())

	// The exhausted task saved its final state.
	resumed, err := Wander(testLibrary(), testTarget()).
		Logger(NoopLogger()).
		Build()
	require.NoError(t, err)
	require.NoError(t, resumed.LoadFrom(ctx, store, "e2e.fws"))
	assert.True(t, task.Equal(resumed))
}
