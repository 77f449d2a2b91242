package selectors

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan bounds one read in time.
type TimeSpan = timespan.TimeSpan

// NewTimeSpan returns the span between from and to.
func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

// ReadEvent describes one read served by a memoized selector instance.
// Exactly one of the three read outcomes holds:
//   - Recomputed false, Reused true: dependencies unchanged, combiner skipped.
//   - Recomputed true, Reused true: combiner ran, result collapsed onto the
//     previous value by the configured equality strategy.
//   - Recomputed true, Reused false: combiner ran and produced the new value.
type ReadEvent struct {
	Selector   string // combinator identity
	Name       string
	ParamsKey  string // fingerprint of the bound argument set
	Recomputed bool
	Reused     bool
	Span       TimeSpan
}

// fingerprint condenses a canonical argument encoding, whose bytes are not
// printable, into a short stable hex form for events and logs.
func fingerprint(canonicalKey string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(canonicalKey))
}
