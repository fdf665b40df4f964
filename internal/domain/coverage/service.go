package coverage

import "context"

type CoverageService interface {
	// Check buckets employees on approved leave per day per department
	// and flags days meeting or exceeding the threshold.
	Check(ctx context.Context, req CheckCoverageRequest) (CoverageReport, error)

	// ValidateAssignment rejects an asset/vehicle assignment dated inside
	// the employee's approved leave with ErrAssignmentConflict.
	ValidateAssignment(ctx context.Context, req ValidateAssignmentRequest) error
}
