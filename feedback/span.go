package feedback

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Span is the wall-clock window some observed work occupied.
type Span = timespan.TimeSpan

// NewSpan builds the span between two instants.
func NewSpan(from, to time.Time) Span {
	return timespan.BetweenTimes(from, to)
}

// TimeBounded is implemented by records that carry the span of the work they
// describe, e.g. trigger fire records.
type TimeBounded interface {
	TimeSpan() Span
}
