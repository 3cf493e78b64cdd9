package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/oldnick85/func-wander/expr"
	"github.com/oldnick85/func-wander/persist"
)

// SettingsState is the persisted slice of the task configuration.
type SettingsState struct {
	MaxBest  int `json:"max_best"`
	MaxDepth int `json:"max_depth"`
}

// State is the persisted form of a Task. Trees are kept as raw documents
// because decoding them needs the atom library; Restore resolves them.
type State struct {
	Settings    SettingsState     `json:"settings"`
	Count       uint64            `json:"count"`
	Done        bool              `json:"done"`
	Threshold   Suitability       `json:"suitability_threshold"`
	CurrentTree json.RawMessage   `json:"current_tree"`
	Best        []json.RawMessage `json:"best"`
}

type rawSettings struct {
	MaxBest  *int `json:"max_best"`
	MaxDepth *int `json:"max_depth"`
}

type rawSuitability struct {
	Distance        *uint64 `json:"distance"`
	MaxLevel        *int    `json:"max_level"`
	FunctionsCount  *int    `json:"functions_count"`
	FunctionsUnique *int    `json:"functions_unique"`
}

type rawState struct {
	Settings    *rawSettings       `json:"settings"`
	Count       *uint64            `json:"count"`
	Done        *bool              `json:"done"`
	Threshold   *rawSuitability    `json:"suitability_threshold"`
	CurrentTree json.RawMessage    `json:"current_tree"`
	Best        *[]json.RawMessage `json:"best"`
}

// UnmarshalJSON decodes a state document, rejecting documents with missing
// or mistyped fields. The best array may be absent. On any violation the
// receiver is left unchanged and an error wrapping ErrMalformedState is
// returned.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedState, err)
	}

	if raw.Settings == nil {
		return missingStateField("settings")
	}
	if raw.Settings.MaxBest == nil {
		return missingStateField("settings.max_best")
	}
	if raw.Settings.MaxDepth == nil {
		return missingStateField("settings.max_depth")
	}
	if raw.Count == nil {
		return missingStateField("count")
	}
	if raw.Done == nil {
		return missingStateField("done")
	}
	if raw.Threshold == nil {
		return missingStateField("suitability_threshold")
	}
	if raw.Threshold.Distance == nil {
		return missingStateField("suitability_threshold.distance")
	}
	if raw.Threshold.MaxLevel == nil {
		return missingStateField("suitability_threshold.max_level")
	}
	if raw.Threshold.FunctionsCount == nil {
		return missingStateField("suitability_threshold.functions_count")
	}
	if raw.Threshold.FunctionsUnique == nil {
		return missingStateField("suitability_threshold.functions_unique")
	}
	if len(raw.CurrentTree) == 0 || string(raw.CurrentTree) == "null" {
		return missingStateField("current_tree")
	}

	out := State{
		Settings: SettingsState{
			MaxBest:  *raw.Settings.MaxBest,
			MaxDepth: *raw.Settings.MaxDepth,
		},
		Count: *raw.Count,
		Done:  *raw.Done,
		Threshold: Suitability{
			Distance:        *raw.Threshold.Distance,
			MaxLevel:        *raw.Threshold.MaxLevel,
			FunctionsCount:  *raw.Threshold.FunctionsCount,
			FunctionsUnique: *raw.Threshold.FunctionsUnique,
		},
		CurrentTree: raw.CurrentTree,
	}
	if raw.Best != nil {
		out.Best = *raw.Best
	}
	*s = out
	return nil
}

func missingStateField(name string) error {
	return fmt.Errorf("%w: missing or invalid field %q", ErrMalformedState, name)
}

// Snapshot captures the task as a persistable state document.
func (t *Task[T]) Snapshot() (*State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := json.Marshal(t.fn)
	if err != nil {
		return nil, fmt.Errorf("failed to encode current tree: %w", err)
	}

	best := make([]json.RawMessage, len(t.best))
	for i, b := range t.best {
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode best tree %d: %w", i, err)
		}
		best[i] = data
	}

	return &State{
		Settings: SettingsState{
			MaxBest:  t.opts.MaxBest,
			MaxDepth: t.opts.MaxDepth,
		},
		Count:       t.count,
		Done:        t.done.Load(),
		Threshold:   t.threshold,
		CurrentTree: current,
		Best:        best,
	}, nil
}

// Restore replaces the task's progress with the given state document. All
// trees are validated against the atom library first; on any error the task
// is left untouched. The persisted max_best and max_depth replace the
// configured ones, so a snapshot resumes with the settings it was taken
// under.
func (t *Task[T]) Restore(st *State) error {
	fn := t.newNode()
	if err := fn.UnmarshalJSON(st.CurrentTree); err != nil {
		return fmt.Errorf("%w: current_tree: %w", ErrMalformedState, err)
	}

	restored := make([]*expr.Node[T], 0, len(st.Best))
	for i, data := range st.Best {
		b := t.newNode()
		if err := b.UnmarshalJSON(data); err != nil {
			return fmt.Errorf("%w: best[%d]: %w", ErrMalformedState, i, err)
		}
		restored = append(restored, b)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.opts.MaxBest = st.Settings.MaxBest
	t.opts.MaxDepth = st.Settings.MaxDepth
	t.count = st.Count
	t.threshold = st.Threshold
	t.fn = fn
	t.best = restored
	t.done.Store(st.Done)
	return nil
}

// SaveTo snapshots the task and writes it to the store under name.
func (t *Task[T]) SaveTo(ctx context.Context, store persist.Store, name string) error {
	st, err := t.Snapshot()
	if err != nil {
		return err
	}
	if err := persist.Save(ctx, store, name, st, persist.WithCompression()); err != nil {
		return err
	}
	t.logger.Debug("state saved", "name", name, "count", st.Count)
	return nil
}

// LoadFrom reads the snapshot named name from the store and restores the
// task from it.
func (t *Task[T]) LoadFrom(ctx context.Context, store persist.Store, name string) error {
	var st State
	if err := persist.Load(ctx, store, name, &st); err != nil {
		return err
	}
	if err := t.Restore(&st); err != nil {
		return err
	}
	t.logger.Info("state restored", "name", name, "count", st.Count)
	return nil
}

// Equal reports whether two tasks hold the same progress: settings, counts,
// threshold, current tree and best-list. Each task is snapshotted in turn,
// never holding both task locks at once, so concurrent a.Equal(b) and
// b.Equal(a) cannot deadlock.
func (t *Task[T]) Equal(other *Task[T]) bool {
	if t == other {
		return true
	}

	a, err := t.Snapshot()
	if err != nil {
		return false
	}
	b, err := other.Snapshot()
	if err != nil {
		return false
	}

	if a.Settings != b.Settings || a.Count != b.Count || a.Done != b.Done {
		return false
	}
	if a.Threshold != b.Threshold {
		return false
	}
	if !bytes.Equal(a.CurrentTree, b.CurrentTree) {
		return false
	}
	if len(a.Best) != len(b.Best) {
		return false
	}
	for i := range a.Best {
		if !bytes.Equal(a.Best[i], b.Best[i]) {
			return false
		}
	}
	return true
}
