package coverage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/config"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/coverage"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/fixtures"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/repository/memory"
)

type coverageFixture struct {
	svc         coverage.CoverageService
	vacations   *memory.VacationRepository
	employees   *memory.EmployeeRepository
	departments *memory.DepartmentRepository
}

func newCoverageFixture(t *testing.T) *coverageFixture {
	t.Helper()
	f := &coverageFixture{
		vacations:   memory.NewVacationRepository(),
		employees:   memory.NewEmployeeRepository(),
		departments: memory.NewDepartmentRepository(),
	}
	f.svc = NewCoverageService(f.vacations, f.employees, f.departments,
		config.CoverageConfig{DefaultThreshold: 3})
	return f
}

func (f *coverageFixture) approvedLeave(t *testing.T, employeeID string, start, end time.Time) {
	t.Helper()
	_, err := f.vacations.Create(context.Background(), vacation.VacationRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  start,
		EndDate:    end,
		Status:     vacation.StatusApproved,
	})
	require.NoError(t, err)
}

func TestCheckFlagsDepartmentsAtThreshold(t *testing.T) {
	f := newCoverageFixture(t)
	f.departments.Put(fixtures.Department("dept-ops", "Operations"))
	f.departments.Put(fixtures.Department("dept-fin", "Finance"))
	for _, id := range []string{"emp-1", "emp-2", "emp-3"} {
		f.employees.Put(fixtures.ActiveEmployee(id, "dept-ops", "ops", 2600))
	}
	f.employees.Put(fixtures.ActiveEmployee("emp-4", "dept-fin", "fin", 2600))

	// All three ops employees overlap on Jun 12 only.
	f.approvedLeave(t, "emp-1",
		dateutil.NewDate(2024, time.June, 10), dateutil.NewDate(2024, time.June, 12))
	f.approvedLeave(t, "emp-2",
		dateutil.NewDate(2024, time.June, 12), dateutil.NewDate(2024, time.June, 14))
	f.approvedLeave(t, "emp-3",
		dateutil.NewDate(2024, time.June, 11), dateutil.NewDate(2024, time.June, 13))
	f.approvedLeave(t, "emp-4",
		dateutil.NewDate(2024, time.June, 12), dateutil.NewDate(2024, time.June, 12))

	report, err := f.svc.Check(context.Background(), coverage.CheckCoverageRequest{
		StartDate: "2024-06-11",
		EndDate:   "2024-06-13",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Threshold)
	require.Len(t, report.Days, 3)

	june12 := report.Days[1]
	require.Equal(t, "2024-06-12", june12.Date)
	assert.True(t, june12.Flagged)
	require.Len(t, june12.Departments, 2)

	var ops, fin coverage.DepartmentCount
	for _, d := range june12.Departments {
		switch d.DepartmentID {
		case "dept-ops":
			ops = d
		case "dept-fin":
			fin = d
		}
	}
	assert.True(t, ops.Flagged)
	assert.Equal(t, 3, ops.OnLeave)
	assert.Equal(t, "Operations", ops.DepartmentName)
	assert.Equal(t, []string{"emp-1", "emp-2", "emp-3"}, ops.EmployeeIDs)
	assert.False(t, fin.Flagged)
	assert.Equal(t, 1, fin.OnLeave)

	assert.False(t, report.Days[0].Flagged, "only two ops employees out on Jun 11")
	assert.False(t, report.Days[2].Flagged)
}

func TestCheckHonorsExplicitThreshold(t *testing.T) {
	f := newCoverageFixture(t)
	f.departments.Put(fixtures.Department("dept-ops", "Operations"))
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-ops", "ops", 2600))
	f.approvedLeave(t, "emp-1",
		dateutil.NewDate(2024, time.June, 12), dateutil.NewDate(2024, time.June, 12))

	report, err := f.svc.Check(context.Background(), coverage.CheckCoverageRequest{
		StartDate: "2024-06-12",
		EndDate:   "2024-06-12",
		Threshold: 1,
	})
	require.NoError(t, err)
	require.Len(t, report.Days, 1)
	assert.True(t, report.Days[0].Flagged)
}

func TestCheckEmptyRangeProducesQuietDays(t *testing.T) {
	f := newCoverageFixture(t)

	report, err := f.svc.Check(context.Background(), coverage.CheckCoverageRequest{
		StartDate: "2024-06-11",
		EndDate:   "2024-06-12",
	})
	require.NoError(t, err)
	require.Len(t, report.Days, 2)
	for _, day := range report.Days {
		assert.False(t, day.Flagged)
		assert.Empty(t, day.Departments)
	}
}

func TestValidateAssignmentConflictsWithApprovedLeave(t *testing.T) {
	f := newCoverageFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-ops", "ops", 2600))
	f.approvedLeave(t, "emp-1",
		dateutil.NewDate(2024, time.June, 10), dateutil.NewDate(2024, time.June, 14))

	err := f.svc.ValidateAssignment(context.Background(), coverage.ValidateAssignmentRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-12",
	})
	assert.ErrorIs(t, err, coverage.ErrAssignmentConflict)

	err = f.svc.ValidateAssignment(context.Background(), coverage.ValidateAssignmentRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-15",
	})
	assert.NoError(t, err)
}
