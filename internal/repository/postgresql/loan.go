package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/loan"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/database"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, employee_id, amount, monthly_deduction, remaining_amount, status, issued_date, created_at, updated_at`

func scanLoan(row pgx.Row) (loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Amount, &l.MonthlyDeduction, &l.RemainingAmount,
		&l.Status, &l.IssuedDate, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLoan(q.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Loan{}, loan.ErrLoanNotFound
		}
		return loan.Loan{}, fmt.Errorf("failed to get loan: %w", err)
	}
	return l, nil
}

func (r *loanRepository) ListActiveByEmployee(ctx context.Context, employeeID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE employee_id = $1 AND status = $2 AND remaining_amount > 0
		ORDER BY issued_date
	`

	rows, err := q.Query(ctx, query, employeeID, loan.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	defer rows.Close()

	return collectLoans(rows)
}

func (r *loanRepository) ListByEmployee(ctx context.Context, employeeID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+loanColumns+` FROM loans WHERE employee_id = $1 ORDER BY issued_date`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	return collectLoans(rows)
}

func collectLoans(rows pgx.Rows) ([]loan.Loan, error) {
	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) ApplyDeduction(ctx context.Context, id string, amount decimal.Decimal) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	// The WHERE clause keeps remaining_amount from ever going negative;
	// an over-deduction simply matches no row.
	query := `
		UPDATE loans
		SET remaining_amount = remaining_amount - $2,
			status = CASE WHEN remaining_amount - $2 = 0 THEN 'completed' ELSE status END,
			updated_at = NOW()
		WHERE id = $1 AND remaining_amount >= $2
		RETURNING ` + loanColumns + `
	`

	l, err := scanLoan(q.QueryRow(ctx, query, id, amount))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return loan.Loan{}, getErr
			}
			return loan.Loan{}, loan.ErrInvalidDeduction
		}
		return loan.Loan{}, fmt.Errorf("failed to apply loan deduction: %w", err)
	}
	return l, nil
}

func (r *loanRepository) PauseActiveByEmployee(ctx context.Context, employeeID string) ([]string, error) {
	return r.flipStatus(ctx, employeeID, loan.StatusActive, loan.StatusPaused)
}

func (r *loanRepository) ResumePausedByEmployee(ctx context.Context, employeeID string) ([]string, error) {
	return r.flipStatus(ctx, employeeID, loan.StatusPaused, loan.StatusActive)
}

func (r *loanRepository) flipStatus(ctx context.Context, employeeID string, from, to loan.LoanStatus) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loans
		SET status = $3, updated_at = NOW()
		WHERE employee_id = $1 AND status = $2
		RETURNING id
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to update loan status: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan loan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
