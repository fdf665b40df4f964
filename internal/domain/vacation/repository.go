package vacation

import (
	"context"
	"time"
)

type VacationRequestRepository interface {
	Create(ctx context.Context, request VacationRequest) (VacationRequest, error)
	GetByID(ctx context.Context, id string) (VacationRequest, error)

	// Update persists the whole request (status, chain, audit log) and
	// fails with ErrVersionConflict unless the stored version matches
	// request.Version; on success the stored version is request.Version+1.
	Update(ctx context.Context, request VacationRequest) (VacationRequest, error)

	// ListApprovedInRange returns approved or completed requests whose
	// interval intersects [start, end], across all employees.
	ListApprovedInRange(ctx context.Context, start, end time.Time) ([]VacationRequest, error)

	// HasBlockingOverlap reports whether the employee already has a
	// pending or approved request intersecting [start, end].
	HasBlockingOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// FindApprovedCovering returns approved requests for the employee
	// whose interval contains the given date.
	FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]VacationRequest, error)

	// ListPendingOlderThan returns pending requests created before the
	// cutoff, oldest first. The reminder sweep feeds on this.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]VacationRequest, error)
}
