package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/payroll"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.PayrollRunRepository {
	return &payrollRepository{db: db}
}

const runColumns = `id, period, start_date, end_date, gross_amount, total_deductions, net_amount, status, created_at`

func scanRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	err := row.Scan(
		&run.ID, &run.Period, &run.StartDate, &run.EndDate, &run.GrossAmount,
		&run.TotalDeductions, &run.NetAmount, &run.Status, &run.CreatedAt,
	)
	return run, err
}

func (r *payrollRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.PayrollRun, entries []payroll.PayrollEntry) (payroll.PayrollRun, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		insertRun := `
			INSERT INTO payroll_runs (period, start_date, end_date, gross_amount, total_deductions, net_amount, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`

		err := q.QueryRow(txCtx, insertRun,
			run.Period, run.StartDate, run.EndDate,
			run.GrossAmount, run.TotalDeductions, run.NetAmount, run.Status,
		).Scan(&run.ID, &run.CreatedAt)
		if err != nil {
			// payroll_runs_period_excl is the daterange exclusion
			// constraint; hitting it means a concurrent overlapping run
			// won the race.
			if strings.Contains(err.Error(), "payroll_runs_period_excl") {
				return payroll.ErrPeriodOverlap
			}
			return fmt.Errorf("failed to create payroll run: %w", err)
		}

		insertEntry := `
			INSERT INTO payroll_entries (
				run_id, employee_id, base_salary, bonus_amount,
				standard_working_days, actual_working_days, vacation_days,
				loan_deduction, other_deductions, tax_deduction,
				social_deduction, health_deduction, gross_pay, net_pay,
				additions_detail, deductions_detail, adjustment_reason
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`

		for _, e := range entries {
			additionsJSON, err := marshalDetail(e.AdditionsDetail)
			if err != nil {
				return err
			}
			deductionsJSON, err := marshalDetail(e.DeductionsDetail)
			if err != nil {
				return err
			}

			_, err = q.Exec(txCtx, insertEntry,
				run.ID, e.EmployeeID, e.BaseSalary, e.BonusAmount,
				e.StandardWorkingDays, e.ActualWorkingDays, e.VacationDays,
				e.LoanDeduction, e.OtherDeductions, e.TaxDeduction,
				e.SocialDeduction, e.HealthDeduction, e.GrossPay, e.NetPay,
				additionsJSON, deductionsJSON, e.AdjustmentReason,
			)
			if err != nil {
				return fmt.Errorf("failed to create payroll entry for employee %s: %w", e.EmployeeID, err)
			}
		}

		return nil
	})
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	return run, nil
}

// marshalDetail keeps the suppressed-category contract across storage: a
// nil map stays NULL, not '{}'.
func marshalDetail(detail map[string]decimal.Decimal) ([]byte, error) {
	if detail == nil {
		return nil, nil
	}
	b, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry detail: %w", err)
	}
	return b, nil
}

func (r *payrollRepository) GetRun(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	run, err := scanRun(q.QueryRow(ctx, `SELECT `+runColumns+` FROM payroll_runs WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return run, nil
}

func (r *payrollRepository) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+runColumns+` FROM payroll_runs ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *payrollRepository) GetEntries(ctx context.Context, runID string) ([]payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.run_id, p.employee_id, p.base_salary, p.bonus_amount,
			p.standard_working_days, p.actual_working_days, p.vacation_days,
			p.loan_deduction, p.other_deductions, p.tax_deduction,
			p.social_deduction, p.health_deduction, p.gross_pay, p.net_pay,
			p.additions_detail, p.deductions_detail, p.adjustment_reason,
			p.created_at, e.full_name
		FROM payroll_entries p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.run_id = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.PayrollEntry
	for rows.Next() {
		var e payroll.PayrollEntry
		var additionsJSON, deductionsJSON []byte
		if err := rows.Scan(
			&e.ID, &e.RunID, &e.EmployeeID, &e.BaseSalary, &e.BonusAmount,
			&e.StandardWorkingDays, &e.ActualWorkingDays, &e.VacationDays,
			&e.LoanDeduction, &e.OtherDeductions, &e.TaxDeduction,
			&e.SocialDeduction, &e.HealthDeduction, &e.GrossPay, &e.NetPay,
			&additionsJSON, &deductionsJSON, &e.AdjustmentReason,
			&e.CreatedAt, &e.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		if additionsJSON != nil {
			if err := json.Unmarshal(additionsJSON, &e.AdditionsDetail); err != nil {
				return nil, fmt.Errorf("failed to decode additions detail: %w", err)
			}
		}
		if deductionsJSON != nil {
			if err := json.Unmarshal(deductionsJSON, &e.DeductionsDetail); err != nil {
				return nil, fmt.Errorf("failed to decode deductions detail: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *payrollRepository) DeleteRun(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx, `DELETE FROM payroll_entries WHERE run_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete payroll entries: %w", err)
		}

		tag, err := q.Exec(txCtx, `DELETE FROM payroll_runs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete payroll run: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return payroll.ErrRunNotFound
		}
		return nil
	})
}
