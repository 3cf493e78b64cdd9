package persist

import (
	"context"
	"os"
)

// ErrNotFound is returned when a snapshot does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading and writing named snapshots.
type Store interface {
	// Put writes a snapshot atomically, replacing any previous one.
	Put(ctx context.Context, name string, data []byte) error
	// Get reads a snapshot. It returns ErrNotFound if none exists.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, name string) error
}
