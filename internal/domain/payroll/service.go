package payroll

import "context"

type PayrollService interface {
	// Generate runs the full engine for the requested period: duplicate
	// guard, per-employee vacation/event/loan computation, atomic run
	// write, post-commit loan application and notifications.
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollRunResponse, error)

	GetRun(ctx context.Context, id string) (PayrollRunResponse, error)
	ListRuns(ctx context.Context) ([]PayrollRunResponse, error)
	DeleteRun(ctx context.Context, id string) error
	Summary(ctx context.Context, runID string) (RunSummaryResponse, error)
}
