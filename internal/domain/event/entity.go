package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

type EventType string

const (
	TypeBonus     EventType = "bonus"
	TypeAllowance EventType = "allowance"
	TypeOvertime  EventType = "overtime"
	TypeDeduction EventType = "deduction"
	TypePenalty   EventType = "penalty"
)

// IsAddition reports whether the event type adds to pay; the remaining
// types subtract.
func (t EventType) IsAddition() bool {
	switch t {
	case TypeBonus, TypeAllowance, TypeOvertime:
		return true
	default:
		return false
	}
}

type EventStatus string

const (
	StatusActive   EventStatus = "active"
	StatusInactive EventStatus = "inactive"
)

type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// EmployeeEvent is a one-off or recurring financial event. A recurring
// event is stored once and projected into each period it overlaps; it is
// never materialized as multiple rows.
type EmployeeEvent struct {
	ID             string
	EmployeeID     string
	Type           EventType
	Description    *string
	Amount         decimal.Decimal
	EventDate      time.Time
	AffectsPayroll bool
	Status         EventStatus

	RecurrenceType    RecurrenceType
	RecurrenceEndDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occurrence is one projection of an event into a payroll period.
type Occurrence struct {
	Event EmployeeEvent
	Date  time.Time
}

// ProjectOccurrence maps the event onto [periodStart, periodEnd].
// Non-recurring events occur only on their literal date. A monthly event
// dated on or before the period end, and whose recurrence end (if set)
// has not passed before the period starts, occurs at its original
// day-of-month within the period's month window, clamped to short months.
func (e EmployeeEvent) ProjectOccurrence(periodStart, periodEnd time.Time) (Occurrence, bool) {
	periodStart, periodEnd = dateutil.Date(periodStart), dateutil.Date(periodEnd)
	eventDate := dateutil.Date(e.EventDate)

	if e.RecurrenceType != RecurrenceMonthly {
		if eventDate.Before(periodStart) || eventDate.After(periodEnd) {
			return Occurrence{}, false
		}
		return Occurrence{Event: e, Date: eventDate}, true
	}

	if eventDate.After(periodEnd) {
		return Occurrence{}, false
	}
	if e.RecurrenceEndDate != nil && dateutil.Date(*e.RecurrenceEndDate).Before(periodStart) {
		return Occurrence{}, false
	}

	// Walk the months the period touches and take the first projection
	// that lands inside it.
	for cursor := dateutil.NewDate(periodStart.Year(), periodStart.Month(), 1); !cursor.After(periodEnd); cursor = cursor.AddDate(0, 1, 0) {
		occurs := dateutil.ProjectDayOfMonth(eventDate, cursor.Year(), cursor.Month())
		if occurs.Before(periodStart) || occurs.After(periodEnd) {
			continue
		}
		if occurs.Before(eventDate) {
			continue
		}
		if e.RecurrenceEndDate != nil && occurs.After(dateutil.Date(*e.RecurrenceEndDate)) {
			continue
		}
		return Occurrence{Event: e, Date: occurs}, true
	}
	return Occurrence{}, false
}
