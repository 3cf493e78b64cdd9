// This file implements the fluent builder API for creating search tasks.
// The builder is immutable - each method returns a new builder with the
// updated configuration.
package funcwander

import (
	"time"

	"github.com/oldnick85/func-wander/atom"
	"github.com/oldnick85/func-wander/persist"
	"github.com/oldnick85/func-wander/search"
	"github.com/oldnick85/func-wander/target"
)

// Wander creates a search task builder over the given atom library and
// target. Both pruning modes start enabled.
//
// Example:
//
//	task, err := funcwander.Wander(lib, tgt).
//	    MaxDepth(4).
//	    MaxBest(16).
//	    Build()
func Wander[T atom.Value](atoms *atom.Library[T], tgt target.Target[T]) Builder[T] {
	return Builder[T]{
		atoms:         atoms,
		target:        tgt,
		maxBest:       search.DefaultMaxBest,
		maxDepth:      search.DefaultMaxDepth,
		skipConstant:  true,
		skipSymmetric: true,
	}
}

// Builder is an immutable fluent builder for search tasks.
// Each method returns a new builder with the updated configuration.
type Builder[T atom.Value] struct {
	atoms         *atom.Library[T]
	target        target.Target[T]
	maxBest       int
	maxDepth      int
	skipConstant  bool
	skipSymmetric bool
	logger        *Logger

	store            persist.Store
	snapshotName     string
	autosaveInterval time.Duration
}

// MaxBest sets the best-list capacity.
// Default: 32.
func (b Builder[T]) MaxBest(n int) Builder[T] {
	b.maxBest = n
	return b
}

// MaxDepth sets the candidate tree depth bound. The search space grows
// doubly exponentially with depth; 4 or 5 is already very large.
// Default: 3.
func (b Builder[T]) MaxDepth(d int) Builder[T] {
	b.maxDepth = d
	return b
}

// SkipConstant enables or disables constant-candidate pruning.
// Default: true.
func (b Builder[T]) SkipConstant(enabled bool) Builder[T] {
	b.skipConstant = enabled
	return b
}

// SkipSymmetric enables or disables commutative-duplicate pruning.
// Default: true.
func (b Builder[T]) SkipSymmetric(enabled bool) Builder[T] {
	b.skipSymmetric = enabled
	return b
}

// Logger sets the structured logger for lifecycle and progress events.
func (b Builder[T]) Logger(l *Logger) Builder[T] {
	b.logger = l
	return b
}

// Autosave enables periodic snapshots to the store under name, at most once
// per interval. The final state is always saved when the space is exhausted.
func (b Builder[T]) Autosave(store persist.Store, name string, interval time.Duration) Builder[T] {
	b.store = store
	b.snapshotName = name
	b.autosaveInterval = interval
	return b
}

// Build creates the search task.
func (b Builder[T]) Build() (*search.Task[T], error) {
	optFns := []func(*search.Options){
		search.WithMaxBest(b.maxBest),
		search.WithMaxDepth(b.maxDepth),
	}
	if b.skipConstant {
		optFns = append(optFns, search.WithSkipConstant())
	}
	if b.skipSymmetric {
		optFns = append(optFns, search.WithSkipSymmetric())
	}
	if b.logger != nil {
		optFns = append(optFns, search.WithLogger(b.logger.Logger))
	}
	if b.store != nil {
		optFns = append(optFns, search.WithAutosave(b.store, b.snapshotName, b.autosaveInterval))
	}
	return search.NewTask(b.atoms, b.target, optFns...)
}
