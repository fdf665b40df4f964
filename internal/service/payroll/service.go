package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/config"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/event"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/loan"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/notification"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/payroll"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
)

type PayrollServiceImpl struct {
	runRepo      payroll.PayrollRunRepository
	employeeRepo employee.EmployeeRepository
	vacationRepo vacation.VacationRequestRepository
	eventRepo    event.EventRepository
	loanRepo     loan.LoanRepository
	notifier     notification.Service
	cfg          config.PayrollConfig
	logger       *slog.Logger
}

func NewPayrollService(
	runRepo payroll.PayrollRunRepository,
	employeeRepo employee.EmployeeRepository,
	vacationRepo vacation.VacationRequestRepository,
	eventRepo event.EventRepository,
	loanRepo loan.LoanRepository,
	notifier notification.Service,
	cfg config.PayrollConfig,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		runRepo:      runRepo,
		employeeRepo: employeeRepo,
		vacationRepo: vacationRepo,
		eventRepo:    eventRepo,
		loanRepo:     loanRepo,
		notifier:     notifier,
		cfg:          cfg,
		logger:       logger,
	}
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	start, end := req.Dates()

	// Duplicate guard runs before any employee, event or loan read.
	existing, err := s.runRepo.FindOverlapping(ctx, start, end)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	if len(existing) > 0 {
		return payroll.PayrollRunResponse{}, fmt.Errorf(
			"%w: run %s (%s) covers part of %s..%s",
			payroll.ErrPeriodOverlap, existing[0].ID, existing[0].Period, req.StartDate, req.EndDate,
		)
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	if len(employees) == 0 {
		return payroll.PayrollRunResponse{}, payroll.ErrNoActiveEmployee
	}

	vacationDays, err := s.vacationDaysByEmployee(ctx, start, end)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	eventTotals, err := s.eventTotalsByEmployee(ctx, start, end, req.Toggles)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	var (
		entries    []payroll.PayrollEntry
		deductions []plannedDeduction
		gross      = decimal.Zero
		totalDed   = decimal.Zero
		net        = decimal.Zero
	)
	for _, emp := range employees {
		planned, err := s.planLoanDeductions(ctx, emp.ID)
		if err != nil {
			return payroll.PayrollRunResponse{}, err
		}
		deductions = append(deductions, planned...)

		entry := s.composeEntry(emp, vacationDays[emp.ID], eventTotals[emp.ID], planned)
		entries = append(entries, entry)

		gross = gross.Add(entry.GrossPay)
		totalDed = totalDed.Add(entry.Deductions())
		net = net.Add(entry.NetPay)
	}

	run := payroll.PayrollRun{
		Period:          req.Period,
		StartDate:       start,
		EndDate:         end,
		GrossAmount:     gross,
		TotalDeductions: totalDed,
		NetAmount:       net,
		Status:          payroll.RunStatusCompleted,
	}

	created, err := s.runRepo.CreateRun(ctx, run, entries)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	stored, err := s.runRepo.GetEntries(ctx, created.ID)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	resp := payroll.ToRunResponse(created, stored)

	// The run is committed from here on. The loan ledger is applied after
	// the commit so a failed insert never leaves half-deducted loans; a
	// failed application leaves the run in place and reports the error for
	// reconciliation.
	if err := s.applyLoanDeductions(ctx, deductions); err != nil {
		return resp, fmt.Errorf("payroll run %s committed but loan ledger application failed: %w", created.ID, err)
	}

	s.notifyRun(ctx, created, entries, vacationDays)

	return resp, nil
}

// ========== READS / DELETE ==========

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.PayrollRunResponse, error) {
	run, err := s.runRepo.GetRun(ctx, id)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	entries, err := s.runRepo.GetEntries(ctx, id)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	return payroll.ToRunResponse(run, entries), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context) ([]payroll.PayrollRunResponse, error) {
	runs, err := s.runRepo.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.PayrollRunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, payroll.ToRunResponse(run, nil))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.runRepo.GetRun(ctx, id); err != nil {
		return err
	}
	return s.runRepo.DeleteRun(ctx, id)
}

func (s *PayrollServiceImpl) Summary(ctx context.Context, runID string) (payroll.RunSummaryResponse, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}
	entries, err := s.runRepo.GetEntries(ctx, runID)
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}
	return payroll.RunSummaryResponse{
		Period:        run.Period,
		EmployeeCount: len(entries),
		GrossAmount:   run.GrossAmount,
		NetAmount:     run.NetAmount,
		Deductions:    run.TotalDeductions,
	}, nil
}

// ========== POST-COMMIT SIDE EFFECTS ==========

func (s *PayrollServiceImpl) applyLoanDeductions(ctx context.Context, planned []plannedDeduction) error {
	var failed []error
	for _, p := range planned {
		if _, err := s.loanRepo.ApplyDeduction(ctx, p.LoanID, p.Amount); err != nil {
			s.logger.Error("loan deduction application failed",
				"loan_id", p.LoanID,
				"employee_id", p.EmployeeID,
				"amount", p.Amount.String(),
				"error", err,
			)
			failed = append(failed, fmt.Errorf("loan %s: %w", p.LoanID, err))
		}
	}
	return errors.Join(failed...)
}

func (s *PayrollServiceImpl) notifyRun(ctx context.Context, run payroll.PayrollRun, entries []payroll.PayrollEntry, vacationDays map[string]int) {
	for _, entry := range entries {
		if days := vacationDays[entry.EmployeeID]; days > 0 {
			s.notifier.Emit(ctx, notification.EmitRequest{
				RecipientID: entry.EmployeeID,
				Type:        notification.TypeVacationDeduction,
				Title:       "Vacation reflected in payroll",
				Message:     fmt.Sprintf("%d vacation day(s) were prorated in payroll %s.", days, run.Period),
				Data:        map[string]interface{}{"run_id": run.ID, "vacation_days": days},
			})
		}
		if entry.LoanDeduction.IsPositive() {
			s.notifier.Emit(ctx, notification.EmitRequest{
				RecipientID: entry.EmployeeID,
				Type:        notification.TypeLoanDeduction,
				Title:       "Loan installment deducted",
				Message:     fmt.Sprintf("A loan deduction of %s was applied in payroll %s.", entry.LoanDeduction.StringFixed(2), run.Period),
				Data:        map[string]interface{}{"run_id": run.ID, "amount": entry.LoanDeduction.String()},
			})
		}
	}
}
