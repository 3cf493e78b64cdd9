package search

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldnick85/func-wander/persist"
)

func newRunningTask(t *testing.T, iterations int) *Task[uint16] {
	t.Helper()

	task, err := NewTask(newTestLibrary(), identityTarget(),
		WithMaxDepth(2),
		WithMaxBest(8),
		WithSkipConstant(),
		WithSkipSymmetric(),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)

	for i := 0; i < iterations; i++ {
		require.True(t, task.SearchIterate())
	}
	return task
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	task := newRunningTask(t, 100)

	st, err := task.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), st.Count)
	assert.Equal(t, 8, st.Settings.MaxBest)
	assert.Equal(t, 2, st.Settings.MaxDepth)

	// Same configuration, fresh progress.
	restored := newRunningTask(t, 0)
	require.NoError(t, restored.Restore(st))
	assert.True(t, task.Equal(restored))

	// Both tasks must continue identically from the restored point.
	for i := 0; i < 50; i++ {
		require.True(t, task.SearchIterate())
		require.True(t, restored.SearchIterate())
	}
	assert.True(t, task.Equal(restored))
}

func TestEqualBothDirectionsConcurrently(t *testing.T) {
	a := newRunningTask(t, 20)
	b := newRunningTask(t, 20)

	// Opposite-direction comparisons must not deadlock on the task locks.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.True(t, a.Equal(b))
		}()
		go func() {
			defer wg.Done()
			assert.True(t, b.Equal(a))
		}()
	}
	wg.Wait()
}

func TestStateDocumentFieldNames(t *testing.T) {
	task := newRunningTask(t, 10)

	st, err := task.Snapshot()
	require.NoError(t, err)

	data, err := json.Marshal(st)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"settings", "count", "done", "suitability_threshold", "current_tree", "best"} {
		assert.Contains(t, doc, key)
	}

	settings, ok := doc["settings"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, settings, "max_best")
	assert.Contains(t, settings, "max_depth")

	threshold, ok := doc["suitability_threshold"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"distance", "max_level", "functions_count", "functions_unique"} {
		assert.Contains(t, threshold, key)
	}
}

func TestStateRejectsMissingFields(t *testing.T) {
	task := newRunningTask(t, 10)

	st, err := task.Snapshot()
	require.NoError(t, err)
	data, err := json.Marshal(st)
	require.NoError(t, err)

	fields := []string{"settings", "count", "done", "suitability_threshold", "current_tree"}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			var doc map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &doc))
			delete(doc, field)
			mutated, err := json.Marshal(doc)
			require.NoError(t, err)

			var out State
			err = json.Unmarshal(mutated, &out)
			assert.ErrorIs(t, err, ErrMalformedState)
		})
	}

	// Mistyped field.
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	doc["count"] = json.RawMessage(`"many"`)
	mutated, err := json.Marshal(doc)
	require.NoError(t, err)
	var out State
	assert.ErrorIs(t, json.Unmarshal(mutated, &out), ErrMalformedState)
}

func TestRestoreRejectsUnknownAtom(t *testing.T) {
	task := newRunningTask(t, 10)

	st, err := task.Snapshot()
	require.NoError(t, err)
	st.CurrentTree = json.RawMessage(`{"arity":0,"index":999,"name":"BOGUS"}`)

	countBefore := task.Count()
	err = task.Restore(st)
	assert.ErrorIs(t, err, ErrMalformedState)

	// The live task is untouched on failure.
	assert.Equal(t, countBefore, task.Count())
}

func TestRestoredDoneTaskDoesNotIterate(t *testing.T) {
	task := newRunningTask(t, 1)
	for task.SearchIterate() {
	}
	require.True(t, task.Done())

	st, err := task.Snapshot()
	require.NoError(t, err)
	require.True(t, st.Done)

	restored := newRunningTask(t, 0)
	require.NoError(t, restored.Restore(st))
	require.True(t, restored.Done())

	count := restored.Count()
	require.NoError(t, restored.Run(context.Background()))
	require.NoError(t, restored.Wait())
	assert.Equal(t, count, restored.Count())
}

func TestSaveToLoadFrom(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()

	task := newRunningTask(t, 100)
	require.NoError(t, task.SaveTo(ctx, store, "task.fws"))

	restored := newRunningTask(t, 0)
	require.NoError(t, restored.LoadFrom(ctx, store, "task.fws"))
	assert.True(t, task.Equal(restored))

	missing := newRunningTask(t, 0)
	assert.ErrorIs(t, missing.LoadFrom(ctx, store, "missing.fws"), persist.ErrNotFound)
}

func TestAutosave(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()

	task, err := NewTask(newTestLibrary(), identityTarget(),
		WithMaxDepth(1),
		WithSkipConstant(),
		WithSkipSymmetric(),
		WithLogger(discardLogger()),
		WithAutosave(store, "auto.fws", time.Millisecond),
	)
	require.NoError(t, err)

	require.NoError(t, task.Run(ctx))
	require.NoError(t, task.Wait())
	require.True(t, task.Done())

	// The final save happens on exhaustion regardless of the interval.
	restored, err := NewTask(newTestLibrary(), identityTarget(),
		WithSkipConstant(),
		WithSkipSymmetric(),
		WithLogger(discardLogger()),
	)
	require.NoError(t, err)
	require.NoError(t, restored.LoadFrom(ctx, store, "auto.fws"))
	assert.True(t, task.Equal(restored))
}
