package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInclusiveDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", NewDate(2024, 1, 15), NewDate(2024, 1, 15), 1},
		{"five days", NewDate(2024, 1, 1), NewDate(2024, 1, 5), 5},
		{"full january", NewDate(2024, 1, 1), NewDate(2024, 1, 31), 31},
		{"leap february", NewDate(2024, 2, 1), NewDate(2024, 2, 29), 29},
		{"across months", NewDate(2024, 1, 30), NewDate(2024, 2, 2), 4},
		{"end before start", NewDate(2024, 1, 5), NewDate(2024, 1, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InclusiveDays(tt.start, tt.end))
		})
	}
}

func TestInclusiveDays_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, InclusiveDays(start, end))
}

func TestRange_Clip(t *testing.T) {
	t.Parallel()

	r := Range{Start: NewDate(2024, 1, 10), End: NewDate(2024, 2, 10)}

	clipped, ok := r.Clip(NewDate(2024, 1, 1), NewDate(2024, 1, 31))
	assert.True(t, ok)
	assert.Equal(t, NewDate(2024, 1, 10), clipped.Start)
	assert.Equal(t, NewDate(2024, 1, 31), clipped.End)

	clipped, ok = r.Clip(NewDate(2024, 1, 15), NewDate(2024, 1, 20))
	assert.True(t, ok)
	assert.Equal(t, 6, clipped.Days())

	_, ok = r.Clip(NewDate(2024, 3, 1), NewDate(2024, 3, 31))
	assert.False(t, ok)
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	jan := Range{NewDate(2024, 1, 1), NewDate(2024, 1, 31)}
	assert.True(t, Overlaps(jan.Start, jan.End, NewDate(2024, 1, 31), NewDate(2024, 2, 15)))
	assert.True(t, Overlaps(jan.Start, jan.End, NewDate(2023, 12, 20), NewDate(2024, 1, 1)))
	assert.False(t, Overlaps(jan.Start, jan.End, NewDate(2024, 2, 1), NewDate(2024, 2, 29)))
}

func TestMergeRanges(t *testing.T) {
	t.Parallel()

	t.Run("overlapping ranges count each day once", func(t *testing.T) {
		merged := MergeRanges([]Range{
			{NewDate(2024, 1, 5), NewDate(2024, 1, 10)},
			{NewDate(2024, 1, 8), NewDate(2024, 1, 12)},
		})
		assert.Len(t, merged, 1)
		assert.Equal(t, 8, TotalDays(merged))
	})

	t.Run("adjacent ranges collapse", func(t *testing.T) {
		merged := MergeRanges([]Range{
			{NewDate(2024, 1, 1), NewDate(2024, 1, 5)},
			{NewDate(2024, 1, 6), NewDate(2024, 1, 10)},
		})
		assert.Len(t, merged, 1)
		assert.Equal(t, 10, TotalDays(merged))
	})

	t.Run("disjoint ranges stay separate", func(t *testing.T) {
		merged := MergeRanges([]Range{
			{NewDate(2024, 1, 20), NewDate(2024, 1, 22)},
			{NewDate(2024, 1, 1), NewDate(2024, 1, 3)},
		})
		assert.Len(t, merged, 2)
		assert.Equal(t, NewDate(2024, 1, 1), merged[0].Start)
		assert.Equal(t, 6, TotalDays(merged))
	})

	t.Run("contained range is absorbed", func(t *testing.T) {
		merged := MergeRanges([]Range{
			{NewDate(2024, 1, 1), NewDate(2024, 1, 31)},
			{NewDate(2024, 1, 10), NewDate(2024, 1, 12)},
		})
		assert.Len(t, merged, 1)
		assert.Equal(t, 31, TotalDays(merged))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, MergeRanges(nil))
	})
}

func TestWholeMonthsBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", NewDate(2024, 1, 15), NewDate(2024, 1, 15), 0},
		{"one day short", NewDate(2024, 1, 15), NewDate(2024, 2, 14), 0},
		{"exactly one month", NewDate(2024, 1, 15), NewDate(2024, 2, 15), 1},
		{"one year", NewDate(2023, 3, 1), NewDate(2024, 3, 1), 12},
		{"clamped anniversary", NewDate(2024, 1, 31), NewDate(2024, 2, 29), 1},
		{"to before from", NewDate(2024, 5, 1), NewDate(2024, 4, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WholeMonthsBetween(tt.from, tt.to))
		})
	}
}

func TestProjectDayOfMonth(t *testing.T) {
	t.Parallel()

	origin := NewDate(2023, 11, 15)
	assert.Equal(t, NewDate(2024, 1, 15), ProjectDayOfMonth(origin, 2024, time.January))

	eom := NewDate(2023, 1, 31)
	assert.Equal(t, NewDate(2024, 2, 29), ProjectDayOfMonth(eom, 2024, time.February))
	assert.Equal(t, NewDate(2023, 2, 28), ProjectDayOfMonth(eom, 2023, time.February))
}
