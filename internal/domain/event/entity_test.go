package event

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

func monthlyEvent(eventDate time.Time, until *time.Time) EmployeeEvent {
	return EmployeeEvent{
		ID:                "ev-1",
		EmployeeID:        "emp-1",
		Type:              TypeAllowance,
		Amount:            decimal.NewFromInt(150),
		EventDate:         eventDate,
		AffectsPayroll:    true,
		Status:            StatusActive,
		RecurrenceType:    RecurrenceMonthly,
		RecurrenceEndDate: until,
	}
}

func TestProjectOccurrence_OneOff(t *testing.T) {
	t.Parallel()

	ev := EmployeeEvent{
		EventDate:      dateutil.NewDate(2024, time.January, 10),
		RecurrenceType: RecurrenceNone,
	}

	occ, ok := ev.ProjectOccurrence(dateutil.NewDate(2024, time.January, 1), dateutil.NewDate(2024, time.January, 31))
	require.True(t, ok)
	assert.Equal(t, dateutil.NewDate(2024, time.January, 10), occ.Date)

	_, ok = ev.ProjectOccurrence(dateutil.NewDate(2024, time.February, 1), dateutil.NewDate(2024, time.February, 29))
	assert.False(t, ok, "one-off events never recur")
}

func TestProjectOccurrence_MonthlyKeepsDayOfMonth(t *testing.T) {
	t.Parallel()

	ev := monthlyEvent(dateutil.NewDate(2023, time.November, 15), nil)

	occ, ok := ev.ProjectOccurrence(dateutil.NewDate(2024, time.January, 1), dateutil.NewDate(2024, time.January, 31))
	require.True(t, ok)
	assert.Equal(t, dateutil.NewDate(2024, time.January, 15), occ.Date)
}

func TestProjectOccurrence_MonthlyClampsShortMonths(t *testing.T) {
	t.Parallel()

	ev := monthlyEvent(dateutil.NewDate(2024, time.January, 31), nil)

	occ, ok := ev.ProjectOccurrence(dateutil.NewDate(2024, time.February, 1), dateutil.NewDate(2024, time.February, 29))
	require.True(t, ok)
	assert.Equal(t, dateutil.NewDate(2024, time.February, 29), occ.Date)

	occ, ok = ev.ProjectOccurrence(dateutil.NewDate(2025, time.February, 1), dateutil.NewDate(2025, time.February, 28))
	require.True(t, ok)
	assert.Equal(t, dateutil.NewDate(2025, time.February, 28), occ.Date)
}

func TestProjectOccurrence_MonthlyBounds(t *testing.T) {
	t.Parallel()

	// Not started yet.
	future := monthlyEvent(dateutil.NewDate(2024, time.March, 15), nil)
	_, ok := future.ProjectOccurrence(dateutil.NewDate(2024, time.January, 1), dateutil.NewDate(2024, time.January, 31))
	assert.False(t, ok)

	// Recurrence ended before the period.
	until := dateutil.NewDate(2023, time.December, 31)
	ended := monthlyEvent(dateutil.NewDate(2023, time.June, 15), &until)
	_, ok = ended.ProjectOccurrence(dateutil.NewDate(2024, time.January, 1), dateutil.NewDate(2024, time.January, 31))
	assert.False(t, ok)

	// Recurrence end inside the period but before the projected day.
	cut := dateutil.NewDate(2024, time.January, 10)
	cutShort := monthlyEvent(dateutil.NewDate(2023, time.June, 15), &cut)
	_, ok = cutShort.ProjectOccurrence(dateutil.NewDate(2024, time.January, 1), dateutil.NewDate(2024, time.January, 31))
	assert.False(t, ok)
}
