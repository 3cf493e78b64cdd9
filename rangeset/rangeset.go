// Package rangeset provides sets of sample positions with a compact,
// range-merged textual form. It backs the "which positions match the target"
// bookkeeping of a search.
package rangeset

import (
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of non-negative positions. The zero value is not usable; use
// New.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty Set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Add inserts a single position.
func (s *Set) Add(pos uint32) {
	s.rb.Add(pos)
}

// AddRange inserts every position in [start, end], both inclusive. Start and
// end may be given in either order.
func (s *Set) AddRange(start, end uint32) {
	if start > end {
		start, end = end, start
	}
	s.rb.AddRange(uint64(start), uint64(end)+1)
}

// Contains reports whether pos is in the set.
func (s *Set) Contains(pos uint32) bool {
	return s.rb.Contains(pos)
}

// Count returns the number of positions in the set.
func (s *Set) Count() uint64 {
	return s.rb.GetCardinality()
}

// IsEmpty reports whether the set holds no positions.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Equal reports whether both sets hold exactly the same positions.
func (s *Set) Equal(other *Set) bool {
	if other == nil {
		return false
	}
	return s.rb.Equals(other.rb)
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// String renders the set as space-separated runs: single positions as "p",
// contiguous runs as "[start,end]".
func (s *Set) String() string {
	var b strings.Builder
	it := s.rb.Iterator()
	for it.HasNext() {
		start := it.Next()
		end := start
		for it.HasNext() && it.PeekNext() == end+1 {
			end = it.Next()
		}
		if start == end {
			b.WriteString(strconv.FormatUint(uint64(start), 10))
		} else {
			b.WriteByte('[')
			b.WriteString(strconv.FormatUint(uint64(start), 10))
			b.WriteByte(',')
			b.WriteString(strconv.FormatUint(uint64(end), 10))
			b.WriteByte(']')
		}
		b.WriteByte(' ')
	}
	return b.String()
}
