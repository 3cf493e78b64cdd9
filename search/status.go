package search

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// BestEntry describes one candidate on the ranked best-list.
type BestEntry struct {
	// Suitability is the candidate's score.
	Suitability Suitability `json:"suitability"`
	// Function is the textual form of the candidate, e.g. "AND(X;NOT(1))".
	Function string `json:"function"`
	// Matches lists the target positions the candidate reproduces exactly,
	// as merged ranges.
	Matches string `json:"matches"`
}

// Status is a point-in-time snapshot of a task, safe to read while the
// search keeps running.
type Status struct {
	// Iterations counts candidates accepted so far.
	Iterations uint64 `json:"iterations"`
	// SerialNumber is the serial of the current tree.
	SerialNumber *big.Int `json:"serial_number"`
	// MaxSerialNumber is the size of the whole search space up to the
	// configured depth.
	MaxSerialNumber *big.Int `json:"max_serial_number"`
	// Progress is the fraction of the space covered, in percent.
	Progress float64 `json:"progress"`
	// Elapsed is the wall time spent searching.
	Elapsed time.Duration `json:"elapsed"`
	// Remaining estimates the wall time left at the current pace. Zero
	// until enough time has passed to estimate.
	Remaining time.Duration `json:"remaining"`
	// Rate is accepted candidates per second.
	Rate float64 `json:"rate"`
	// SerialRate is serial numbers covered per second. It exceeds Rate
	// whenever the pruning modes reject candidates.
	SerialRate float64 `json:"serial_rate"`
	// Current is the textual form of the current tree.
	Current string `json:"current"`
	// Done reports whether the space is exhausted.
	Done bool `json:"done"`
	// Best is the ranked best-list, best first.
	Best []BestEntry `json:"best"`
}

// String renders the status as a multi-line console report.
func (s *Status) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "progress %.4f%%; iteration %s; serial %s of %s; %s it/s; elapsed %s; remaining %s\n",
		s.Progress,
		humanize.SIWithDigits(float64(s.Iterations), 2, ""),
		bigSI(s.SerialNumber),
		bigSI(s.MaxSerialNumber),
		humanize.SIWithDigits(s.Rate, 2, ""),
		formatHMS(s.Elapsed),
		formatHMS(s.Remaining),
	)
	fmt.Fprintf(&b, "current %s\n", s.Current)

	if len(s.Best) > 0 {
		fmt.Fprintf(&b, "|   dist   | lvl | fnc | fnu | %-48s| matches\n", "function")
		for _, e := range s.Best {
			fmt.Fprintf(&b, "| %8d | %3d | %3d | %3d | %-48s| %s\n",
				e.Suitability.Distance,
				e.Suitability.MaxLevel,
				e.Suitability.FunctionsCount,
				e.Suitability.FunctionsUnique,
				e.Function,
				e.Matches,
			)
		}
	}
	return b.String()
}

func bigSI(v *big.Int) string {
	if v == nil {
		return "0"
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return humanize.SIWithDigits(f, 2, "")
}

func formatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}
