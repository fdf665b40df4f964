package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/database"
)

type vacationRepository struct {
	db *database.DB
}

func NewVacationRepository(db *database.DB) vacation.VacationRequestRepository {
	return &vacationRepository{db: db}
}

const vacationColumns = `
	v.id, v.employee_id, v.leave_type, v.start_date, v.end_date, v.reason,
	v.status, v.applied_policy_id, v.pause_loans, v.approval_chain,
	v.audit_log, v.version, v.created_at, v.updated_at, e.full_name
`

func scanVacation(row pgx.Row) (vacation.VacationRequest, error) {
	var v vacation.VacationRequest
	var chainJSON, auditJSON []byte
	err := row.Scan(
		&v.ID, &v.EmployeeID, &v.LeaveType, &v.StartDate, &v.EndDate, &v.Reason,
		&v.Status, &v.AppliedPolicyID, &v.PauseLoans, &chainJSON,
		&auditJSON, &v.Version, &v.CreatedAt, &v.UpdatedAt, &v.EmployeeName,
	)
	if err != nil {
		return vacation.VacationRequest{}, err
	}
	if err := json.Unmarshal(chainJSON, &v.ApprovalChain); err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to decode approval chain: %w", err)
	}
	if err := json.Unmarshal(auditJSON, &v.AuditLog); err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to decode audit log: %w", err)
	}
	return v, nil
}

func (r *vacationRepository) Create(ctx context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	chainJSON, err := json.Marshal(request.ApprovalChain)
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to encode approval chain: %w", err)
	}
	auditJSON, err := json.Marshal(request.AuditLog)
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to encode audit log: %w", err)
	}

	query := `
		INSERT INTO vacation_requests (
			employee_id, leave_type, start_date, end_date, reason, status,
			applied_policy_id, pause_loans, approval_chain, audit_log, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
		RETURNING id, version, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate,
		request.Reason, request.Status, request.AppliedPolicyID, request.PauseLoans,
		chainJSON, auditJSON,
	).Scan(&request.ID, &request.Version, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to create vacation request: %w", err)
	}

	return request, nil
}

func (r *vacationRepository) GetByID(ctx context.Context, id string) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests v
		LEFT JOIN employees e ON e.id = v.employee_id
		WHERE v.id = $1
	`

	v, err := scanVacation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return vacation.VacationRequest{}, vacation.ErrRequestNotFound
		}
		return vacation.VacationRequest{}, fmt.Errorf("failed to get vacation request: %w", err)
	}
	return v, nil
}

func (r *vacationRepository) Update(ctx context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	chainJSON, err := json.Marshal(request.ApprovalChain)
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to encode approval chain: %w", err)
	}
	auditJSON, err := json.Marshal(request.AuditLog)
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to encode audit log: %w", err)
	}

	// The version predicate is the optimistic lock: losing a race means
	// zero rows and a version conflict, never a silent overwrite.
	query := `
		UPDATE vacation_requests
		SET status = $2, applied_policy_id = $3, approval_chain = $4,
			audit_log = $5, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $6
		RETURNING version, updated_at
	`

	err = q.QueryRow(ctx, query,
		request.ID, request.Status, request.AppliedPolicyID,
		chainJSON, auditJSON, request.Version,
	).Scan(&request.Version, &request.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, request.ID); getErr != nil {
				return vacation.VacationRequest{}, getErr
			}
			return vacation.VacationRequest{}, vacation.ErrVersionConflict
		}
		return vacation.VacationRequest{}, fmt.Errorf("failed to update vacation request: %w", err)
	}

	return request, nil
}

func (r *vacationRepository) ListApprovedInRange(ctx context.Context, start, end time.Time) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests v
		LEFT JOIN employees e ON e.id = v.employee_id
		WHERE v.status IN ('approved', 'completed')
		  AND v.start_date <= $2 AND v.end_date >= $1
		ORDER BY v.start_date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved vacations: %w", err)
	}
	defer rows.Close()

	return collectVacations(rows)
}

func (r *vacationRepository) HasBlockingOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM vacation_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3 AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping vacations: %w", err)
	}
	return exists, nil
}

func (r *vacationRepository) FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests v
		LEFT JOIN employees e ON e.id = v.employee_id
		WHERE v.employee_id = $1 AND v.status = 'approved'
		  AND v.start_date <= $2 AND v.end_date >= $2
		ORDER BY v.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find covering vacations: %w", err)
	}
	defer rows.Close()

	return collectVacations(rows)
}

func (r *vacationRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests v
		LEFT JOIN employees e ON e.id = v.employee_id
		WHERE v.status = 'pending' AND v.created_at < $1
		ORDER BY v.created_at
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending vacations: %w", err)
	}
	defer rows.Close()

	return collectVacations(rows)
}

func collectVacations(rows pgx.Rows) ([]vacation.VacationRequest, error) {
	var requests []vacation.VacationRequest
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation request: %w", err)
		}
		requests = append(requests, v)
	}
	return requests, rows.Err()
}
