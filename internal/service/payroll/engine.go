package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/event"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/payroll"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

// vacationDaysByEmployee counts, per employee, the working days lost to
// approved leave inside [start, end]. Overlapping approved requests are
// merged as interval unions first so no day is counted twice.
func (s *PayrollServiceImpl) vacationDaysByEmployee(ctx context.Context, start, end time.Time) (map[string]int, error) {
	requests, err := s.vacationRepo.ListApprovedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	ranges := make(map[string][]dateutil.Range)
	for _, r := range requests {
		clipped, ok := dateutil.Range{Start: r.StartDate, End: r.EndDate}.Clip(start, end)
		if !ok {
			continue
		}
		ranges[r.EmployeeID] = append(ranges[r.EmployeeID], clipped)
	}

	days := make(map[string]int, len(ranges))
	for employeeID, rs := range ranges {
		days[employeeID] = dateutil.TotalDays(dateutil.MergeRanges(rs))
	}
	return days, nil
}

// eventTotals carries one employee's aggregated payroll events for a period.
type eventTotals struct {
	Additions  decimal.Decimal
	Deductions decimal.Decimal

	AdditionsDetail  map[string]decimal.Decimal
	DeductionsDetail map[string]decimal.Decimal
}

func categoryEnabled(t event.EventType, toggles *payroll.ScenarioToggles) bool {
	if toggles == nil {
		return true
	}
	switch t {
	case event.TypeBonus:
		return !toggles.DisableBonuses
	case event.TypeAllowance:
		return !toggles.DisableAllowances
	case event.TypeOvertime:
		return !toggles.DisableOvertime
	case event.TypeDeduction:
		return !toggles.DisableDeductions
	case event.TypePenalty:
		return !toggles.DisablePenalties
	}
	return true
}

// eventTotalsByEmployee projects every candidate event into the period and
// sums the occurrences per employee and category. A category suppressed by
// the toggles never reaches the breakdown maps, so a missing key means
// "suppressed" while a present zero means "computed".
func (s *PayrollServiceImpl) eventTotalsByEmployee(ctx context.Context, start, end time.Time, toggles *payroll.ScenarioToggles) (map[string]eventTotals, error) {
	candidates, err := s.eventRepo.ListCandidatesForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]eventTotals)
	for _, ev := range candidates {
		if !ev.AffectsPayroll || ev.Status != event.StatusActive {
			continue
		}
		if !categoryEnabled(ev.Type, toggles) {
			continue
		}
		occurrence, ok := ev.ProjectOccurrence(start, end)
		if !ok {
			continue
		}

		t := totals[ev.EmployeeID]
		key := string(ev.Type)
		if ev.Type.IsAddition() {
			if t.AdditionsDetail == nil {
				t.AdditionsDetail = make(map[string]decimal.Decimal)
			}
			t.AdditionsDetail[key] = t.AdditionsDetail[key].Add(occurrence.Event.Amount)
			t.Additions = t.Additions.Add(occurrence.Event.Amount)
		} else {
			if t.DeductionsDetail == nil {
				t.DeductionsDetail = make(map[string]decimal.Decimal)
			}
			t.DeductionsDetail[key] = t.DeductionsDetail[key].Add(occurrence.Event.Amount)
			t.Deductions = t.Deductions.Add(occurrence.Event.Amount)
		}
		totals[ev.EmployeeID] = t
	}
	return totals, nil
}

// plannedDeduction is one loan installment scheduled for a run, applied to
// the loan ledger only after the run commits.
type plannedDeduction struct {
	LoanID     string
	EmployeeID string
	Amount     decimal.Decimal
}

func (s *PayrollServiceImpl) planLoanDeductions(ctx context.Context, employeeID string) ([]plannedDeduction, error) {
	loans, err := s.loanRepo.ListActiveByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	var planned []plannedDeduction
	for _, l := range loans {
		amount := l.DeductionFor()
		if !amount.IsPositive() {
			continue
		}
		planned = append(planned, plannedDeduction{LoanID: l.ID, EmployeeID: employeeID, Amount: amount})
	}
	return planned, nil
}

func (s *PayrollServiceImpl) composeEntry(emp employee.Employee, vacationDays int, events eventTotals, planned []plannedDeduction) payroll.PayrollEntry {
	standard := emp.StandardWorkingDays
	if standard <= 0 {
		standard = s.cfg.DefaultStandardWorkingDays
	}

	actual := standard - vacationDays
	if actual < 0 {
		actual = 0
	}

	baseSalary := emp.MonthlySalary.
		Mul(decimal.NewFromInt(int64(actual))).
		Div(decimal.NewFromInt(int64(standard)))

	loanDeduction := decimal.Zero
	for _, p := range planned {
		loanDeduction = loanDeduction.Add(p.Amount)
	}

	grossPay := baseSalary.Add(events.Additions)
	netPay := grossPay.Sub(loanDeduction).Sub(events.Deductions)
	if netPay.IsNegative() {
		netPay = decimal.Zero
	}

	name := emp.FullName
	return payroll.PayrollEntry{
		EmployeeID:          emp.ID,
		BaseSalary:          baseSalary,
		BonusAmount:         events.Additions,
		StandardWorkingDays: standard,
		ActualWorkingDays:   actual,
		VacationDays:        vacationDays,
		LoanDeduction:       loanDeduction,
		OtherDeductions:     events.Deductions,
		TaxDeduction:        decimal.Zero,
		SocialDeduction:     decimal.Zero,
		HealthDeduction:     decimal.Zero,
		GrossPay:            grossPay,
		NetPay:              netPay,
		AdditionsDetail:     events.AdditionsDetail,
		DeductionsDetail:    events.DeductionsDetail,
		EmployeeName:        &name,
	}
}
