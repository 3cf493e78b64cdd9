package funcwander

import (
	"github.com/oldnick85/func-wander/expr"
	"github.com/oldnick85/func-wander/persist"
	"github.com/oldnick85/func-wander/search"
)

// Re-exported sentinels so callers of the facade do not need to import the
// subpackages for error checks.
var (
	// ErrNilLibrary is returned by Build when no atom library is supplied.
	ErrNilLibrary = search.ErrNilLibrary
	// ErrNilTarget is returned by Build when no target is supplied.
	ErrNilTarget = search.ErrNilTarget
	// ErrMalformedState is returned when a snapshot fails validation.
	ErrMalformedState = search.ErrMalformedState
	// ErrMalformedTree is returned when a persisted tree fails validation.
	ErrMalformedTree = expr.ErrMalformedTree
	// ErrSnapshotNotFound is returned when no snapshot exists under a name.
	ErrSnapshotNotFound = persist.ErrNotFound
)
