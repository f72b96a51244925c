// Package timeseries stores sparse date/value series with forward-fill
// lookups.
package timeseries

import (
	"sort"
	"time"

	"folio/internal/domain"
	"folio/internal/logging"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

// Point is a raw date/value pair, with the date as YYYY-MM-DD.
type Point struct {
	Date  string
	Value decimal.Decimal
}

type entry struct {
	date  time.Time
	value decimal.Decimal
}

// Series is sorted ascending by date. Duplicate dates are kept as loaded;
// use Validate to reject them.
type Series struct {
	entries []entry
	logger  *log.Logger
}

func New(logger *log.Logger) *Series {
	return &Series{logger: logging.OrSilent(logger)}
}

func FromPoints(points []Point, logger *log.Logger) *Series {
	s := New(logger)
	s.Load(points)
	return s
}

// Load replaces all data with points. Points whose date does not parse
// are dropped with a warning; the number dropped is returned.
func (s *Series) Load(points []Point) int {
	entries := make([]entry, 0, len(points))
	dropped := 0
	for _, p := range points {
		d, err := domain.ParseDay(p.Date)
		if err != nil {
			dropped++
			s.logger.Warn().Str("date", p.Date).Err(err).Msg("dropping point with unparseable date")
			continue
		}
		entries = append(entries, entry{date: d, value: p.Value})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].date.Before(entries[j].date)
	})
	s.entries = entries
	return dropped
}

func (s *Series) Len() int {
	return len(s.entries)
}

// Get returns the value at the latest date on or before date. Dates before
// the series start get the earliest value; an empty series gives zero.
func (s *Series) Get(date time.Time) decimal.Decimal {
	if len(s.entries) == 0 {
		return decimal.Zero
	}
	day := domain.Day(date)
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].date.After(day)
	})
	if i == 0 {
		return s.entries[0].value
	}
	return s.entries[i-1].value
}

func (s *Series) Last() decimal.Decimal {
	if len(s.entries) == 0 {
		return decimal.Zero
	}
	return s.entries[len(s.entries)-1].value
}

// Span returns the first and last dates. ok is false for an empty series.
func (s *Series) Span() (start, end time.Time, ok bool) {
	if len(s.entries) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.entries[0].date, s.entries[len(s.entries)-1].date, true
}

func (s *Series) Points() []Point {
	out := make([]Point, len(s.entries))
	for i, e := range s.entries {
		out[i] = Point{Date: domain.FormatDay(e.date), Value: e.value}
	}
	return out
}

// MergeWith returns a new series holding all of other's data plus this
// series' data strictly outside other's date span. other is assumed to
// cover one contiguous span.
func (s *Series) MergeWith(other *Series) *Series {
	out := &Series{logger: s.logger}
	start, end, ok := other.Span()
	if !ok {
		out.entries = append([]entry(nil), s.entries...)
		return out
	}

	entries := make([]entry, 0, len(s.entries)+len(other.entries))
	for _, e := range s.entries {
		if e.date.Before(start) {
			entries = append(entries, e)
		}
	}
	entries = append(entries, other.entries...)
	for _, e := range s.entries {
		if e.date.After(end) {
			entries = append(entries, e)
		}
	}
	out.entries = entries
	return out
}

// Validate reports false when two loaded entries share a date.
func (s *Series) Validate() bool {
	for i := 1; i < len(s.entries); i++ {
		if s.entries[i].date.Equal(s.entries[i-1].date) {
			return false
		}
	}
	return true
}

// Validate reports false when two points share the exact same date.
func Validate(points []Point) bool {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		if _, ok := seen[p.Date]; ok {
			return false
		}
		seen[p.Date] = struct{}{}
	}
	return true
}
