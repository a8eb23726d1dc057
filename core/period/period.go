package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// DateLayout is the calendar date format used on the command line and in exports.
const DateLayout = "2006-01-02"

// MonthLayout is the month format used in exports.
const MonthLayout = "2006-01"

// Day returns the calendar day of t in loc, as midnight UTC.
// Days are always represented in UTC so they compare and hash consistently as map keys.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Month returns the first day of the month containing day.
func Month(day time.Time) time.Time {
	return now.With(day.UTC()).BeginningOfMonth()
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	// Start is the first included day.
	Start time.Time `json:"start" yaml:"start"`
	// End is the last included day.
	End time.Time `json:"end" yaml:"end"`
}

// NewDateRange builds a range from two days, normalizing both to UTC midnight.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start, time.UTC), End: Day(end, time.UTC)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", r.End.Format(DateLayout), r.Start.Format(DateLayout))
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD strings into an inclusive range.
func ParseDateRange(from, to string) (DateRange, error) {
	start, err := time.Parse(DateLayout, strings.TrimSpace(from))
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", from, err)
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(to))
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", to, err)
	}
	return NewDateRange(start, end)
}

// LastDays returns the range of n days ending on the day of ref.
func LastDays(ref time.Time, n int, loc *time.Location) DateRange {
	if n < 1 {
		n = 1
	}
	end := Day(ref, loc)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// Contains reports whether day falls inside the range, both ends inclusive.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// ContainsTime reports whether the calendar day of t in loc falls inside the range.
func (r DateRange) ContainsTime(t time.Time, loc *time.Location) bool {
	return r.Contains(Day(t, loc))
}

// Days returns the number of calendar days in the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// String renders the range as "start..end".
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}
