package dateutil

import "time"

// Date strips the time-of-day component, keeping the calendar date in UTC.
// All payroll and leave intervals are calendar dates; comparing anything
// with a clock component against them is a bug.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate builds a calendar date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// InclusiveDays counts the days in [start, end], both bounds included.
// Returns 0 when end is before start.
func InclusiveDays(start, end time.Time) int {
	start, end = Date(start), Date(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Date(aStart).After(Date(bEnd)) && !Date(aEnd).Before(Date(bStart))
}

// Range is an inclusive calendar-date interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive day count of the range.
func (r Range) Days() int {
	return InclusiveDays(r.Start, r.End)
}

// Clip intersects r with [lo, hi]. The second return is false when the
// intervals do not overlap.
func (r Range) Clip(lo, hi time.Time) (Range, bool) {
	start, end := Date(r.Start), Date(r.End)
	lo, hi = Date(lo), Date(hi)
	if start.Before(lo) {
		start = lo
	}
	if end.After(hi) {
		end = hi
	}
	if end.Before(start) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// MergeRanges unions overlapping or adjacent inclusive ranges so each day
// is counted once. The input is not modified.
func MergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]Range, len(ranges))
	for i, r := range ranges {
		sorted[i] = Range{Start: Date(r.Start), End: Date(r.End)}
	}
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Start.Before(sorted[j-1].Start); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		// Adjacent days (end+1 == start) collapse too.
		if !r.Start.After(last.End.AddDate(0, 0, 1)) {
			if r.End.After(last.End) {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// TotalDays sums the inclusive day counts of already-merged ranges.
func TotalDays(ranges []Range) int {
	total := 0
	for _, r := range ranges {
		total += r.Days()
	}
	return total
}

// WholeMonthsBetween counts full calendar months elapsed from `from` to
// `to`. A month counts once `to` reaches the same day-of-month as `from`
// (clamped for short months). Returns 0 when to is before from.
func WholeMonthsBetween(from, to time.Time) int {
	from, to = Date(from), Date(to)
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	anniversary := ProjectDayOfMonth(from, to.Year(), to.Month())
	if to.Before(anniversary) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// ProjectDayOfMonth places origin's day-of-month into the given month,
// clamping to the month's last day (Jan 31 projects to Feb 28/29).
func ProjectDayOfMonth(origin time.Time, year int, month time.Month) time.Time {
	day := origin.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return NewDate(year, month+1, 1).AddDate(0, 0, -1).Day()
}
