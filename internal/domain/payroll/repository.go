package payroll

import (
	"context"
	"time"
)

type PayrollRunRepository interface {
	// FindOverlapping returns runs whose [start, end] intersects the
	// given range. The duplicate guard calls this before anything else.
	FindOverlapping(ctx context.Context, start, end time.Time) ([]PayrollRun, error)

	// CreateRun inserts the run and all entries atomically. A concurrent
	// overlapping insert fails with ErrPeriodOverlap from the storage
	// constraint, not just the application-level guard.
	CreateRun(ctx context.Context, run PayrollRun, entries []PayrollEntry) (PayrollRun, error)

	GetRun(ctx context.Context, id string) (PayrollRun, error)
	ListRuns(ctx context.Context) ([]PayrollRun, error)
	GetEntries(ctx context.Context, runID string) ([]PayrollEntry, error)

	// DeleteRun removes the run and its entries together.
	DeleteRun(ctx context.Context, id string) error
}
