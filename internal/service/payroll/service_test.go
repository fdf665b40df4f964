package payroll

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/config"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/event"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/loan"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/notification"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/payroll"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/fixtures"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/repository/memory"
)

type stubNotifier struct {
	mu      sync.Mutex
	emitted []notification.EmitRequest
}

func (s *stubNotifier) Emit(_ context.Context, req notification.EmitRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = append(s.emitted, req)
}

func (s *stubNotifier) List(context.Context, string, bool) ([]*notification.Notification, error) {
	return nil, nil
}
func (s *stubNotifier) MarkAsRead(context.Context, string, []string) error { return nil }
func (s *stubNotifier) Subscribe(context.Context, string) (<-chan *notification.Notification, func()) {
	ch := make(chan *notification.Notification)
	close(ch)
	return ch, func() {}
}
func (s *stubNotifier) Close() {}

// countingEmployeeRepo wraps the in-memory store to count reads.
type countingEmployeeRepo struct {
	*memory.EmployeeRepository
	listActiveCalls int
}

func (r *countingEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	r.listActiveCalls++
	return r.EmployeeRepository.ListActive(ctx)
}

type payrollFixture struct {
	svc       payroll.PayrollService
	runs      *memory.PayrollRunRepository
	employees *countingEmployeeRepo
	vacations *memory.VacationRepository
	events    *memory.EventRepository
	loans     *memory.LoanRepository
	notifier  *stubNotifier
}

func newPayrollFixture(t *testing.T) *payrollFixture {
	t.Helper()
	f := &payrollFixture{
		runs:      memory.NewPayrollRunRepository(),
		employees: &countingEmployeeRepo{EmployeeRepository: memory.NewEmployeeRepository()},
		vacations: memory.NewVacationRepository(),
		events:    memory.NewEventRepository(),
		loans:     memory.NewLoanRepository(),
		notifier:  &stubNotifier{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewPayrollService(
		f.runs, f.employees, f.vacations, f.events, f.loans,
		f.notifier, config.PayrollConfig{DefaultStandardWorkingDays: 26}, logger,
	)
	return f
}

func (f *payrollFixture) approvedVacation(t *testing.T, employeeID string, start, end time.Time) {
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

func januaryRequest() payroll.GeneratePayrollRequest {
	return payroll.GeneratePayrollRequest{
		Period:    "2024-01",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	}
}

func TestGenerateProratesSalaryForVacationDays(t *testing.T) {
	f := newPayrollFixture(t)
	emp := fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000)
	emp.StandardWorkingDays = 30
	f.employees.Put(emp)
	f.approvedVacation(t, "emp-1",
		dateutil.NewDate(2024, time.January, 8), dateutil.NewDate(2024, time.January, 12))

	run, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)
	require.Len(t, run.Entries, 1)

	entry := run.Entries[0]
	assert.Equal(t, 5, entry.VacationDays)
	assert.Equal(t, 25, entry.ActualWorkingDays)
	assert.True(t, entry.BaseSalary.Equal(decimal.NewFromInt(2500)),
		"base salary %s", entry.BaseSalary)
}

func TestGenerateCapsLoanDeductionAtRemainingAndCompletesLoan(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000))
	l := fixtures.ActiveLoan("loan-1", "emp-1", 1000, 150, 100)
	f.loans.Put(l)

	run, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)
	require.Len(t, run.Entries, 1)
	assert.True(t, run.Entries[0].LoanDeduction.Equal(decimal.NewFromInt(100)))

	after, err := f.loans.GetByID(context.Background(), "loan-1")
	require.NoError(t, err)
	assert.Equal(t, loan.StatusCompleted, after.Status)
	assert.True(t, after.RemainingAmount.IsZero())
}

func TestGenerateConflictPerformsNoEmployeeReads(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000))

	_, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)
	callsAfterFirst := f.employees.listActiveCalls

	_, err = f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		Period:    "2024-01b",
		StartDate: "2024-01-15",
		EndDate:   "2024-02-14",
	})
	require.ErrorIs(t, err, payroll.ErrPeriodOverlap)
	assert.Equal(t, callsAfterFirst, f.employees.listActiveCalls,
		"duplicate guard must fire before any employee read")
}

func TestGenerateProjectsMonthlyRecurringEventIntoPeriod(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000))
	f.events.Put(fixtures.MonthlyEvent("ev-1", "emp-1", event.TypeAllowance, 150,
		dateutil.NewDate(2023, time.November, 15), nil))

	run, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)
	require.Len(t, run.Entries, 1)

	entry := run.Entries[0]
	require.Contains(t, entry.AdditionsDetail, "allowance")
	assert.True(t, entry.AdditionsDetail["allowance"].Equal(decimal.NewFromInt(150)))
	assert.True(t, entry.BonusAmount.Equal(decimal.NewFromInt(150)))
}

func TestGenerateMergesOverlappingVacationsBeforeCounting(t *testing.T) {
	f := newPayrollFixture(t)
	emp := fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 2600)
	f.employees.Put(emp)
	// Jan 5-10 and Jan 8-12 union to Jan 5-12: 8 days, not 11.
	f.approvedVacation(t, "emp-1",
		dateutil.NewDate(2024, time.January, 5), dateutil.NewDate(2024, time.January, 10))
	f.approvedVacation(t, "emp-1",
		dateutil.NewDate(2024, time.January, 8), dateutil.NewDate(2024, time.January, 12))

	run, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)
	require.Len(t, run.Entries, 1)
	assert.Equal(t, 8, run.Entries[0].VacationDays)
	assert.Equal(t, 18, run.Entries[0].ActualWorkingDays)
}

func TestGenerateScenarioTogglesSuppressCategory(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000))
	f.events.Put(fixtures.OneOffEvent("ev-1", "emp-1", event.TypeBonus, 500,
		dateutil.NewDate(2024, time.January, 10)))
	f.events.Put(fixtures.OneOffEvent("ev-2", "emp-1", event.TypeOvertime, 0,
		dateutil.NewDate(2024, time.January, 11)))

	req := januaryRequest()
	req.Toggles = &payroll.ScenarioToggles{DisableBonuses: true}

	run, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, run.Entries, 1)

	entry := run.Entries[0]
	// Suppressed category is absent; a computed zero stays present.
	assert.NotContains(t, entry.AdditionsDetail, "bonus")
	require.Contains(t, entry.AdditionsDetail, "overtime")
	assert.True(t, entry.AdditionsDetail["overtime"].IsZero())
}

func TestGenerateNetPayFloorsAtZero(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 100))
	f.events.Put(fixtures.OneOffEvent("ev-1", "emp-1", event.TypePenalty, 500,
		dateutil.NewDate(2024, time.January, 10)))

	run, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)
	require.Len(t, run.Entries, 1)
	assert.True(t, run.Entries[0].NetPay.IsZero())
}

func TestGenerateRunTotalsMatchEntries(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000))
	f.employees.Put(fixtures.ActiveEmployee("emp-2", "dept-1", "bojan", 2600))
	f.loans.Put(fixtures.ActiveLoan("loan-1", "emp-2", 1200, 200, 800))
	f.events.Put(fixtures.OneOffEvent("ev-1", "emp-1", event.TypeBonus, 250,
		dateutil.NewDate(2024, time.January, 20)))

	run, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)
	require.Len(t, run.Entries, 2)

	gross, net, deductions := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range run.Entries {
		gross = gross.Add(e.GrossPay)
		net = net.Add(e.NetPay)
		deductions = deductions.Add(
			e.LoanDeduction.Add(e.OtherDeductions).Add(e.TaxDeduction).Add(e.SocialDeduction).Add(e.HealthDeduction))
		assert.True(t, e.TaxDeduction.IsZero())
		assert.True(t, e.SocialDeduction.IsZero())
		assert.True(t, e.HealthDeduction.IsZero())
	}
	assert.True(t, run.GrossAmount.Equal(gross))
	assert.True(t, run.NetAmount.Equal(net))
	assert.True(t, run.TotalDeductions.Equal(deductions))
}

func TestGenerateSkipsInactiveEmployees(t *testing.T) {
	f := newPayrollFixture(t)
	resigned := fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000)
	resigned.Status = employee.StatusResigned
	f.employees.Put(resigned)

	_, err := f.svc.Generate(context.Background(), januaryRequest())
	assert.ErrorIs(t, err, payroll.ErrNoActiveEmployee)
}

func TestGenerateValidatesRequest(t *testing.T) {
	f := newPayrollFixture(t)

	_, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		Period:    "2024-01",
		StartDate: "2024-01-31",
		EndDate:   "2024-01-01",
	})
	require.Error(t, err)
}

func TestGenerateEmitsDeductionNotifications(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000))
	f.loans.Put(fixtures.ActiveLoan("loan-1", "emp-1", 1000, 150, 800))
	f.approvedVacation(t, "emp-1",
		dateutil.NewDate(2024, time.January, 3), dateutil.NewDate(2024, time.January, 4))

	_, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)

	var types []notification.NotificationType
	for _, e := range f.notifier.emitted {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, notification.TypeVacationDeduction)
	assert.Contains(t, types, notification.TypeLoanDeduction)
}

func TestRunLifecycle(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000))

	created, err := f.svc.Generate(context.Background(), januaryRequest())
	require.NoError(t, err)

	fetched, err := f.svc.GetRun(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Len(t, fetched.Entries, 1)

	runs, err := f.svc.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	summary, err := f.svc.Summary(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01", summary.Period)
	assert.Equal(t, 1, summary.EmployeeCount)

	require.NoError(t, f.svc.DeleteRun(context.Background(), created.ID))
	_, err = f.svc.GetRun(context.Background(), created.ID)
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}
