package search

import "errors"

var (
	// ErrNilLibrary is returned when no atom library is supplied.
	ErrNilLibrary = errors.New("search: atom library must not be nil")

	// ErrNilTarget is returned when no target is supplied.
	ErrNilTarget = errors.New("search: target must not be nil")

	// ErrNoNullaryAtoms is returned when the library holds no leaves to
	// enumerate over.
	ErrNoNullaryAtoms = errors.New("search: atom library has no nullary atoms")

	// ErrNoUnaryAtoms is returned when MaxDepth > 0 but the library holds
	// no unary atoms, so no tree above depth zero can be formed.
	ErrNoUnaryAtoms = errors.New("search: atom library has no unary atoms")

	// ErrInvalidMaxBest is returned for a non-positive best-list capacity.
	ErrInvalidMaxBest = errors.New("search: max best must be positive")

	// ErrInvalidMaxDepth is returned for a negative depth limit.
	ErrInvalidMaxDepth = errors.New("search: max depth must not be negative")

	// ErrAlreadyStarted is returned when Run is called twice.
	ErrAlreadyStarted = errors.New("search: task already started")

	// ErrMalformedState is returned when a persisted state document is
	// missing fields, carries wrong types or references unknown atoms.
	// The live task is left untouched in that case.
	ErrMalformedState = errors.New("search: malformed state document")
)
