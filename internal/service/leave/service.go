package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/leave"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

type LedgerServiceImpl struct {
	policyRepo  leave.PolicyRepository
	balanceRepo leave.BalanceRepository
	logger      *slog.Logger
}

func NewLedgerService(
	policyRepo leave.PolicyRepository,
	balanceRepo leave.BalanceRepository,
	logger *slog.Logger,
) leave.LedgerService {
	return &LedgerServiceImpl{
		policyRepo:  policyRepo,
		balanceRepo: balanceRepo,
		logger:      logger,
	}
}

// PolicyFor resolves the accrual policy assigned to the employee for the
// leave type on asOf, and the effective monthly rate (assignment override
// wins over the policy rate).
func (s *LedgerServiceImpl) PolicyFor(ctx context.Context, employeeID, leaveType string, asOf time.Time) (leave.AccrualPolicy, decimal.Decimal, error) {
	assignments, err := s.policyRepo.ListEmployeePolicies(ctx, employeeID)
	if err != nil {
		return leave.AccrualPolicy{}, decimal.Zero, err
	}
	for _, assignment := range assignments {
		if !assignment.ActiveOn(asOf) {
			continue
		}
		policy, err := s.policyRepo.GetByID(ctx, assignment.PolicyID)
		if err != nil {
			if errors.Is(err, leave.ErrPolicyNotFound) {
				continue
			}
			return leave.AccrualPolicy{}, decimal.Zero, err
		}
		if policy.LeaveType != leaveType || !policy.ActiveOn(asOf) {
			continue
		}
		rate := policy.AccrualRatePerMonth
		if assignment.OverrideRate != nil {
			rate = *assignment.OverrideRate
		}
		return policy, rate, nil
	}
	return leave.AccrualPolicy{}, decimal.Zero, leave.ErrNoPolicyAssigned
}

func (s *LedgerServiceImpl) GetBalance(ctx context.Context, employeeID, leaveType string, year int, asOf time.Time) (leave.BalanceResponse, error) {
	balance, err := s.accrued(ctx, employeeID, leaveType, year, asOf)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.ToBalanceResponse(balance), nil
}

func (s *LedgerServiceImpl) Consume(ctx context.Context, employeeID, leaveType string, year int, days decimal.Decimal, asOf time.Time) (leave.Balance, error) {
	policy, _, err := s.PolicyFor(ctx, employeeID, leaveType, asOf)
	if err != nil {
		return leave.Balance{}, err
	}

	balance, err := s.accrued(ctx, employeeID, leaveType, year, asOf)
	if err != nil {
		return leave.Balance{}, err
	}

	remaining := balance.BalanceDays.Sub(days)
	if remaining.IsNegative() && !policy.AllowNegativeBalance {
		return leave.Balance{}, leave.ErrNegativeBalance
	}

	balance.BalanceDays = remaining
	balance.ConsumedDays = balance.ConsumedDays.Add(days)
	return s.balanceRepo.Upsert(ctx, balance)
}

func (s *LedgerServiceImpl) Restore(ctx context.Context, employeeID, leaveType string, year int, days decimal.Decimal) (leave.Balance, error) {
	balance, err := s.balanceRepo.Get(ctx, employeeID, leaveType, year)
	if err != nil {
		return leave.Balance{}, err
	}

	balance.BalanceDays = balance.BalanceDays.Add(days)
	balance.ConsumedDays = balance.ConsumedDays.Sub(days)
	if balance.ConsumedDays.IsNegative() {
		balance.ConsumedDays = decimal.Zero
	}
	return s.balanceRepo.Upsert(ctx, balance)
}

// accrued brings the (employee, leave type, year) balance row up to date
// with whole-month accrual as of asOf, creating the row from the previous
// year's carryover when it does not exist yet.
func (s *LedgerServiceImpl) accrued(ctx context.Context, employeeID, leaveType string, year int, asOf time.Time) (leave.Balance, error) {
	policy, rate, err := s.PolicyFor(ctx, employeeID, leaveType, asOf)
	if err != nil {
		return leave.Balance{}, err
	}

	balance, err := s.balanceRepo.Get(ctx, employeeID, leaveType, year)
	if errors.Is(err, leave.ErrBalanceNotFound) {
		opening, openErr := s.carryoverFromPreviousYear(ctx, employeeID, leaveType, year, policy)
		if openErr != nil {
			return leave.Balance{}, openErr
		}
		balance = leave.Balance{
			EmployeeID:  employeeID,
			LeaveType:   leaveType,
			Year:        year,
			BalanceDays: opening,
		}
	} else if err != nil {
		return leave.Balance{}, err
	}

	target := s.accruedTarget(ctx, employeeID, leaveType, year, asOf, rate)
	if target.GreaterThan(balance.AccruedDays) {
		delta := target.Sub(balance.AccruedDays)
		balance.AccruedDays = target
		balance.BalanceDays = balance.BalanceDays.Add(delta)
	}
	if policy.MaxBalanceDays != nil && balance.BalanceDays.GreaterThan(*policy.MaxBalanceDays) {
		balance.BalanceDays = *policy.MaxBalanceDays
	}

	return s.balanceRepo.Upsert(ctx, balance)
}

// accruedTarget is the total accrual the (employee, year) pair should have
// reached by asOf: one rate unit per whole month elapsed inside the year
// since the assignment took effect.
func (s *LedgerServiceImpl) accruedTarget(ctx context.Context, employeeID, leaveType string, year int, asOf time.Time, rate decimal.Decimal) decimal.Decimal {
	accrualStart := dateutil.NewDate(year, time.January, 1)
	if assignments, err := s.policyRepo.ListEmployeePolicies(ctx, employeeID); err == nil {
		for _, a := range assignments {
			if a.ActiveOn(asOf) && dateutil.Date(a.EffectiveFrom).After(accrualStart) {
				accrualStart = dateutil.Date(a.EffectiveFrom)
			}
		}
	}

	windowEnd := dateutil.Date(asOf)
	if yearEnd := dateutil.NewDate(year, time.December, 31); windowEnd.After(yearEnd) {
		windowEnd = yearEnd
	}

	months := dateutil.WholeMonthsBetween(accrualStart, windowEnd)
	return rate.Mul(decimal.NewFromInt(int64(months)))
}

// carryoverFromPreviousYear computes the opening balance of a new year row:
// last year's closing balance clamped to the policy's carryover limit.
func (s *LedgerServiceImpl) carryoverFromPreviousYear(ctx context.Context, employeeID, leaveType string, year int, policy leave.AccrualPolicy) (decimal.Decimal, error) {
	previous, err := s.balanceRepo.Get(ctx, employeeID, leaveType, year-1)
	if errors.Is(err, leave.ErrBalanceNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	carry := previous.BalanceDays
	if carry.IsNegative() {
		// A negative balance follows the employee into the new year.
		return carry, nil
	}
	if policy.CarryoverLimitDays != nil && carry.GreaterThan(*policy.CarryoverLimitDays) {
		s.logger.Debug("carryover clamped",
			"employee_id", employeeID,
			"leave_type", leaveType,
			"year", year,
			"closing", carry.String(),
			"limit", policy.CarryoverLimitDays.String(),
		)
		carry = *policy.CarryoverLimitDays
	}
	return carry, nil
}
