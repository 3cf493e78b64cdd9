package search

// DefaultThresholdDistance is the rejection threshold a Task starts with
// before the best-list has been refreshed for the first time.
const DefaultThresholdDistance uint64 = 1_000_000

// Suitability is the composite, totally-ordered score of one candidate:
// distance to the target, tree height and function-application counts.
// Lower compares better on every component.
type Suitability struct {
	Distance        uint64 `json:"distance"`
	MaxLevel        int    `json:"max_level"`
	FunctionsCount  int    `json:"functions_count"`
	FunctionsUnique int    `json:"functions_unique"`
}

// Compare orders two scores: -1 when s ranks better than other, +1 when
// worse, 0 when equivalent. The ordering keys are Distance, then MaxLevel,
// then FunctionsUnique. FunctionsCount is tracked and persisted but
// deliberately excluded from the ordering, which favors candidates that
// reuse sub-expressions over ones that merely use few nodes.
func (s Suitability) Compare(other Suitability) int {
	switch {
	case s.Distance < other.Distance:
		return -1
	case s.Distance > other.Distance:
		return 1
	}
	switch {
	case s.MaxLevel < other.MaxLevel:
		return -1
	case s.MaxLevel > other.MaxLevel:
		return 1
	}
	switch {
	case s.FunctionsUnique < other.FunctionsUnique:
		return -1
	case s.FunctionsUnique > other.FunctionsUnique:
		return 1
	}
	return 0
}

func defaultThreshold() Suitability {
	return Suitability{Distance: DefaultThresholdDistance}
}
