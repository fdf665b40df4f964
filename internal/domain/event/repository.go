package event

import (
	"context"
	"time"
)

// EventRepository reads the employee-event store. Events stay normalized:
// ListCandidatesForPeriod returns every active payroll-affecting event
// that could project into [start, end] (recurrence expansion happens in
// the engine, not in storage).
type EventRepository interface {
	GetByID(ctx context.Context, id string) (EmployeeEvent, error)
	ListCandidatesForPeriod(ctx context.Context, start, end time.Time) ([]EmployeeEvent, error)
}
