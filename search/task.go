// Package search runs the brute-force enumeration over expression trees and
// keeps a ranked list of the candidates closest to the target.
package search

import (
	"context"
	"log/slog"
	"math/big"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/oldnick85/func-wander/atom"
	"github.com/oldnick85/func-wander/expr"
	"github.com/oldnick85/func-wander/persist"
	"github.com/oldnick85/func-wander/target"
)

const (
	// DefaultMaxBest is the default best-list capacity.
	DefaultMaxBest = 32
	// DefaultMaxDepth is the default tree depth bound.
	DefaultMaxDepth = 3
)

// Options configures a Task.
type Options struct {
	// MaxBest is the best-list capacity. Must be positive.
	MaxBest int
	// MaxDepth bounds candidate tree depth. Must not be negative.
	MaxDepth int
	// SkipConstant prunes candidates with a constant output vector.
	SkipConstant bool
	// SkipSymmetric prunes mirror duplicates of commutative atoms.
	SkipSymmetric bool
	// Logger receives progress and lifecycle events.
	Logger *slog.Logger

	// AutosaveStore, AutosaveName and AutosaveInterval enable periodic
	// snapshots during Run. All three must be set together.
	AutosaveStore    persist.Store
	AutosaveName     string
	AutosaveInterval time.Duration
}

// WithMaxBest sets the best-list capacity.
func WithMaxBest(n int) func(*Options) {
	return func(o *Options) { o.MaxBest = n }
}

// WithMaxDepth sets the tree depth bound.
func WithMaxDepth(d int) func(*Options) {
	return func(o *Options) { o.MaxDepth = d }
}

// WithSkipConstant enables constant-candidate pruning.
func WithSkipConstant() func(*Options) {
	return func(o *Options) { o.SkipConstant = true }
}

// WithSkipSymmetric enables commutative-duplicate pruning.
func WithSkipSymmetric() func(*Options) {
	return func(o *Options) { o.SkipSymmetric = true }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithAutosave enables periodic snapshots to store under name, at most once
// per interval.
func WithAutosave(store persist.Store, name string, interval time.Duration) func(*Options) {
	return func(o *Options) {
		o.AutosaveStore = store
		o.AutosaveName = name
		o.AutosaveInterval = interval
	}
}

// Task enumerates candidate trees against a target and keeps the best ones.
//
// The search loop runs on its own goroutine; Status, Best, Snapshot and Stop
// may be called concurrently from others.
type Task[T atom.Value] struct {
	opts   Options
	atoms  *atom.Library[T]
	target target.Target[T]
	logger *slog.Logger

	mu        sync.Mutex
	fn        *expr.Node[T]
	count     uint64
	best      []*expr.Node[T]
	threshold Suitability
	started   time.Time

	done atomic.Bool

	cancel  context.CancelFunc
	group   *errgroup.Group
	limiter *rate.Limiter
}

// NewTask creates a Task over the given atom library and target.
func NewTask[T atom.Value](atoms *atom.Library[T], tgt target.Target[T], optFns ...func(*Options)) (*Task[T], error) {
	opts := Options{
		MaxBest:  DefaultMaxBest,
		MaxDepth: DefaultMaxDepth,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if atoms == nil {
		return nil, ErrNilLibrary
	}
	if tgt == nil {
		return nil, ErrNilTarget
	}
	if atoms.NullaryCount() == 0 {
		return nil, ErrNoNullaryAtoms
	}
	if opts.MaxDepth > 0 && atoms.UnaryCount() == 0 {
		return nil, ErrNoUnaryAtoms
	}
	if opts.MaxBest <= 0 {
		return nil, ErrInvalidMaxBest
	}
	if opts.MaxDepth < 0 {
		return nil, ErrInvalidMaxDepth
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := &Task[T]{
		opts:      opts,
		atoms:     atoms,
		target:    tgt,
		logger:    logger,
		threshold: defaultThreshold(),
	}
	t.fn = t.newNode()
	if opts.AutosaveStore != nil && opts.AutosaveInterval > 0 {
		t.limiter = rate.NewLimiter(rate.Every(opts.AutosaveInterval), 1)
	}
	return t, nil
}

func (t *Task[T]) newNode() *expr.Node[T] {
	var exprOpts []func(*expr.Options)
	if t.opts.SkipConstant {
		exprOpts = append(exprOpts, expr.WithSkipConstant())
	}
	if t.opts.SkipSymmetric {
		exprOpts = append(exprOpts, expr.WithSkipSymmetric())
	}
	return expr.New(t.atoms, exprOpts...)
}

// Run starts the search loop on its own goroutine and returns immediately.
// The loop stops when the space is exhausted, the context is canceled or
// Stop is called.
func (t *Task[T]) Run(ctx context.Context) error {
	if t.cancel != nil {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.group, runCtx = errgroup.WithContext(runCtx)

	t.mu.Lock()
	t.started = time.Now()
	t.mu.Unlock()

	t.group.Go(func() error {
		return t.search(runCtx)
	})
	return nil
}

// Stop cancels the search loop and waits for it to finish. Stopping a task
// that was never started is a no-op.
func (t *Task[T]) Stop() error {
	if t.cancel == nil {
		return nil
	}
	t.cancel()
	return t.group.Wait()
}

// Wait blocks until the search loop finishes on its own or is stopped.
func (t *Task[T]) Wait() error {
	if t.group == nil {
		return nil
	}
	return t.group.Wait()
}

func (t *Task[T]) search(ctx context.Context) error {
	t.logger.Info("search started",
		"max_depth", t.opts.MaxDepth,
		"max_best", t.opts.MaxBest,
	)

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("search stopped", "iterations", t.Count())
			return nil
		default:
		}

		if t.done.Load() {
			// A restored snapshot may already be exhausted.
			return nil
		}

		if !t.SearchIterate() {
			t.logger.Info("search finished, space exhausted", "iterations", t.Count())
			if err := t.autosave(ctx); err != nil {
				t.logger.Warn("final save failed", "error", err)
			}
			return nil
		}

		if t.limiter != nil && t.limiter.Allow() {
			if err := t.autosave(ctx); err != nil {
				t.logger.Warn("autosave failed", "error", err)
			}
		}
	}
}

func (t *Task[T]) autosave(ctx context.Context) error {
	if t.opts.AutosaveStore == nil {
		return nil
	}
	return t.SaveTo(ctx, t.opts.AutosaveStore, t.opts.AutosaveName)
}

// SearchIterate advances the search by one accepted candidate: it iterates
// the current tree, scores it and updates the best-list. It returns false
// once the space up to the depth bound is exhausted.
func (t *Task[T]) SearchIterate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.fn.Iterate(t.opts.MaxDepth) {
		t.done.Store(true)
		return false
	}
	t.checkBest(t.fn)
	t.count++
	return true
}

// Count returns the number of candidates accepted so far.
func (t *Task[T]) Count() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Done reports whether the search space is exhausted.
func (t *Task[T]) Done() bool {
	return t.done.Load()
}

// Best returns copies of the current best-list, best first.
func (t *Task[T]) Best() []*expr.Node[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*expr.Node[T], len(t.best))
	for i, b := range t.best {
		out[i] = b.Clone()
	}
	return out
}

func (t *Task[T]) calcSuitability(fn *expr.Node[T]) Suitability {
	values := fn.Calculate(false)
	uniq := make(map[string]struct{})
	fn.UniqueSerials(uniq)
	return Suitability{
		Distance:        t.target.Compare(values),
		MaxLevel:        fn.MaxLevel(),
		FunctionsCount:  fn.FunctionsCount(),
		FunctionsUnique: len(uniq),
	}
}

// checkBest decides whether fn enters the best-list. Callers hold t.mu.
//
// The list stays sorted best-first. A candidate is rejected cheaply against
// the threshold when the list is full, and rejected as a duplicate when its
// output vector or match-position set equals any listed entry. A candidate
// worse than every listed entry is dropped even when the list has room.
func (t *Task[T]) checkBest(fn *expr.Node[T]) {
	if len(t.best) == 0 {
		t.best = append(t.best, fn.Clone())
		t.threshold = t.calcSuitability(t.best[0])
		return
	}

	values := fn.Calculate(false)
	suit := t.calcSuitability(fn)

	if len(t.best) >= t.opts.MaxBest && suit.Compare(t.threshold) > 0 {
		return
	}

	matches := t.target.MatchPositions(values)

	for i, b := range t.best {
		if suit.Compare(t.calcSuitability(b)) >= 0 {
			continue
		}
		unique := true
		for _, other := range t.best {
			otherValues := other.Calculate(false)
			if slices.Equal(otherValues, values) {
				unique = false
				break
			}
			if t.target.MatchPositions(otherValues).Equal(matches) {
				unique = false
				break
			}
		}
		if unique {
			t.best = slices.Insert(t.best, i, fn.Clone())
		}
		break
	}

	if len(t.best) > t.opts.MaxBest {
		t.best = t.best[:t.opts.MaxBest]
	}
	t.threshold = t.calcSuitability(t.best[len(t.best)-1])
}

// Status returns a point-in-time snapshot of the search.
func (t *Task[T]) Status() *Status {
	t.mu.Lock()

	sn := t.fn.SerialNumber()
	maxSN := t.fn.MaxSerialNumber(t.opts.MaxDepth)
	current := t.fn.String()
	iterations := t.count
	started := t.started

	entries := make([]BestEntry, len(t.best))
	for i, b := range t.best {
		entries[i] = BestEntry{
			Suitability: t.calcSuitability(b),
			Function:    b.String(),
			Matches:     t.target.MatchPositions(b.Calculate(false)).String(),
		}
	}

	t.mu.Unlock()

	st := &Status{
		Iterations:      iterations,
		SerialNumber:    sn,
		MaxSerialNumber: maxSN,
		Current:         current,
		Done:            t.done.Load(),
		Best:            entries,
	}

	if maxSN.Sign() > 0 {
		snF, _ := new(big.Float).SetInt(sn).Float64()
		maxF, _ := new(big.Float).SetInt(maxSN).Float64()
		st.Progress = snF / maxF * 100
	}

	if !started.IsZero() {
		st.Elapsed = time.Since(started)
		secs := st.Elapsed.Seconds()
		if secs > 0 {
			st.Rate = float64(iterations) / secs
			snF, _ := new(big.Float).SetInt(sn).Float64()
			st.SerialRate = snF / secs
			if st.SerialRate > 0 {
				maxF, _ := new(big.Float).SetInt(maxSN).Float64()
				st.Remaining = time.Duration((maxF - snF) / st.SerialRate * float64(time.Second))
			}
		}
	}
	return st
}
