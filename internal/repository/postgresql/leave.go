package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/leave"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) leave.PolicyRepository {
	return &policyRepository{db: db}
}

const policyColumns = `
	id, leave_type, accrual_rate_per_month, max_balance_days,
	carryover_limit_days, allow_negative_balance, effective_from,
	effective_to, created_at, updated_at
`

func scanPolicy(row pgx.Row) (leave.AccrualPolicy, error) {
	var p leave.AccrualPolicy
	err := row.Scan(
		&p.ID, &p.LeaveType, &p.AccrualRatePerMonth, &p.MaxBalanceDays,
		&p.CarryoverLimitDays, &p.AllowNegativeBalance, &p.EffectiveFrom,
		&p.EffectiveTo, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *policyRepository) GetByID(ctx context.Context, id string) (leave.AccrualPolicy, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPolicy(q.QueryRow(ctx, `SELECT `+policyColumns+` FROM leave_accrual_policies WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.AccrualPolicy{}, leave.ErrPolicyNotFound
		}
		return leave.AccrualPolicy{}, fmt.Errorf("failed to get accrual policy: %w", err)
	}
	return p, nil
}

func (r *policyRepository) GetByLeaveType(ctx context.Context, leaveType string) ([]leave.AccrualPolicy, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+policyColumns+` FROM leave_accrual_policies WHERE leave_type = $1 ORDER BY effective_from`,
		leaveType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accrual policies: %w", err)
	}
	defer rows.Close()

	var policies []leave.AccrualPolicy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accrual policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (r *policyRepository) ListEmployeePolicies(ctx context.Context, employeeID string) ([]leave.EmployeePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, policy_id, override_rate, effective_from,
			effective_to, created_at, updated_at
		FROM employee_leave_policies
		WHERE employee_id = $1
		ORDER BY effective_from
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee leave policies: %w", err)
	}
	defer rows.Close()

	var assignments []leave.EmployeePolicy
	for rows.Next() {
		var a leave.EmployeePolicy
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.PolicyID, &a.OverrideRate, &a.EffectiveFrom,
			&a.EffectiveTo, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee leave policy: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

type balanceRepository struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) Get(ctx context.Context, employeeID, leaveType string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, year, balance_days, accrued_days,
			consumed_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveType, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year, &b.BalanceDays,
		&b.AccruedDays, &b.ConsumedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

func (r *balanceRepository) Upsert(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type, year, balance_days, accrued_days, consumed_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, leave_type, year) DO UPDATE SET
			balance_days = EXCLUDED.balance_days,
			accrued_days = EXCLUDED.accrued_days,
			consumed_days = EXCLUDED.consumed_days,
			updated_at = NOW()
		RETURNING id, employee_id, leave_type, year, balance_days, accrued_days,
			consumed_days, created_at, updated_at
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveType, balance.Year,
		balance.BalanceDays, balance.AccruedDays, balance.ConsumedDays,
	).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year, &b.BalanceDays,
		&b.AccruedDays, &b.ConsumedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}
	return b, nil
}
