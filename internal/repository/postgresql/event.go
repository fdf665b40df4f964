package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/event"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `
	id, employee_id, type, description, amount, event_date, affects_payroll,
	status, recurrence_type, recurrence_end_date, created_at, updated_at
`

func scanEvent(row pgx.Row) (event.EmployeeEvent, error) {
	var e event.EmployeeEvent
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Type, &e.Description, &e.Amount, &e.EventDate,
		&e.AffectsPayroll, &e.Status, &e.RecurrenceType, &e.RecurrenceEndDate,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (event.EmployeeEvent, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEvent(q.QueryRow(ctx, `SELECT `+eventColumns+` FROM employee_events WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return event.EmployeeEvent{}, event.ErrEventNotFound
		}
		return event.EmployeeEvent{}, fmt.Errorf("failed to get employee event: %w", err)
	}
	return e, nil
}

func (r *eventRepository) ListCandidatesForPeriod(ctx context.Context, start, end time.Time) ([]event.EmployeeEvent, error) {
	q := GetQuerier(ctx, r.db)

	// Recurring events stay normalized; this returns everything that
	// might project into the window. The engine does the expansion.
	query := `
		SELECT ` + eventColumns + `
		FROM employee_events
		WHERE status = 'active' AND affects_payroll = true
		  AND (
			(recurrence_type = 'monthly'
				AND event_date <= $2
				AND (recurrence_end_date IS NULL OR recurrence_end_date >= $1))
			OR (recurrence_type = 'none' AND event_date BETWEEN $1 AND $2)
		  )
		ORDER BY event_date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee events: %w", err)
	}
	defer rows.Close()

	var events []event.EmployeeEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
