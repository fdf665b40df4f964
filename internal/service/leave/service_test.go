package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/leave"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/fixtures"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/repository/memory"
)

type ledgerFixture struct {
	svc      leave.LedgerService
	policies *memory.PolicyRepository
	balances *memory.BalanceRepository
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		policies: memory.NewPolicyRepository(),
		balances: memory.NewBalanceRepository(),
	}
	f.svc = NewLedgerService(f.policies, f.balances,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func (f *ledgerFixture) assignAnnual(overrideRate *decimal.Decimal) {
	f.policies.PutPolicy(fixtures.AnnualLeavePolicy("pol-annual"))
	f.policies.PutAssignment(fixtures.PolicyAssignment("asg-1", "emp-1", "pol-annual", overrideRate))
}

func midJune(year int) time.Time {
	return time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func TestGetBalanceAccruesWholeMonths(t *testing.T) {
	f := newLedgerFixture(t)
	f.assignAnnual(nil)

	// Jan 1 through Jun 15 is five whole months at 2.5/month.
	balance, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2024, midJune(2024))
	require.NoError(t, err)
	assert.True(t, balance.AccruedDays.Equal(decimal.RequireFromString("12.5")), "accrued %s", balance.AccruedDays)
	assert.True(t, balance.BalanceDays.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, balance.ConsumedDays.IsZero())
}

func TestGetBalanceIsIdempotentAcrossCalls(t *testing.T) {
	f := newLedgerFixture(t)
	f.assignAnnual(nil)

	first, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2024, midJune(2024))
	require.NoError(t, err)
	second, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2024, midJune(2024))
	require.NoError(t, err)
	assert.True(t, first.BalanceDays.Equal(second.BalanceDays), "repeat read must not accrue again")

	// A later asOf adds only the months elapsed since.
	july, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2024,
		time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, july.AccruedDays.Equal(decimal.NewFromInt(15)), "accrued %s", july.AccruedDays)
}

func TestAssignmentOverrideRateWins(t *testing.T) {
	f := newLedgerFixture(t)
	override := decimal.NewFromInt(3)
	f.assignAnnual(&override)

	balance, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2024, midJune(2024))
	require.NoError(t, err)
	assert.True(t, balance.AccruedDays.Equal(decimal.NewFromInt(15)), "accrued %s", balance.AccruedDays)
}

func TestBalanceIsCappedAtPolicyMaximum(t *testing.T) {
	f := newLedgerFixture(t)
	override := decimal.NewFromInt(10)
	f.assignAnnual(&override)

	balance, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2024, midJune(2024))
	require.NoError(t, err)
	assert.True(t, balance.AccruedDays.Equal(decimal.NewFromInt(50)))
	assert.True(t, balance.BalanceDays.Equal(decimal.NewFromInt(30)), "cap at policy max, got %s", balance.BalanceDays)
}

func TestAccrualStartsAtAssignmentEffectiveFrom(t *testing.T) {
	f := newLedgerFixture(t)
	f.policies.PutPolicy(fixtures.AnnualLeavePolicy("pol-annual"))
	assignment := fixtures.PolicyAssignment("asg-1", "emp-1", "pol-annual", nil)
	assignment.EffectiveFrom = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	f.policies.PutAssignment(assignment)

	// Mid-year hire accrues from March, not January.
	balance, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2024, midJune(2024))
	require.NoError(t, err)
	assert.True(t, balance.AccruedDays.Equal(decimal.RequireFromString("7.5")), "accrued %s", balance.AccruedDays)
}

func TestCarryoverClampsToPolicyLimit(t *testing.T) {
	f := newLedgerFixture(t)
	f.assignAnnual(nil)
	_, err := f.balances.Upsert(context.Background(), leave.Balance{
		EmployeeID:  "emp-1",
		LeaveType:   "annual",
		Year:        2024,
		BalanceDays: decimal.NewFromInt(18),
		AccruedDays: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	// Opening is min(18, carryover limit 10); one whole month accrues by Feb 15.
	balance, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2025,
		time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, balance.BalanceDays.Equal(decimal.RequireFromString("12.5")), "balance %s", balance.BalanceDays)
}

func TestNegativeBalanceCarriesOverUnclamped(t *testing.T) {
	f := newLedgerFixture(t)
	f.assignAnnual(nil)
	_, err := f.balances.Upsert(context.Background(), leave.Balance{
		EmployeeID:  "emp-1",
		LeaveType:   "annual",
		Year:        2024,
		BalanceDays: decimal.NewFromInt(-3),
	})
	require.NoError(t, err)

	balance, err := f.svc.GetBalance(context.Background(), "emp-1", "annual", 2025,
		time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, balance.BalanceDays.Equal(decimal.RequireFromString("-0.5")), "balance %s", balance.BalanceDays)
}

func TestConsumeRejectsOverdraft(t *testing.T) {
	f := newLedgerFixture(t)
	f.assignAnnual(nil)

	_, err := f.svc.Consume(context.Background(), "emp-1", "annual", 2024,
		decimal.NewFromInt(20), midJune(2024))
	assert.ErrorIs(t, err, leave.ErrNegativeBalance)
}

func TestConsumeAllowsOverdraftWhenPolicyPermits(t *testing.T) {
	f := newLedgerFixture(t)
	f.policies.PutPolicy(fixtures.SickLeavePolicy("pol-sick"))
	f.policies.PutAssignment(fixtures.PolicyAssignment("asg-1", "emp-1", "pol-sick", nil))

	balance, err := f.svc.Consume(context.Background(), "emp-1", "sick", 2024,
		decimal.NewFromInt(10), midJune(2024))
	require.NoError(t, err)
	assert.True(t, balance.BalanceDays.Equal(decimal.NewFromInt(-5)), "balance %s", balance.BalanceDays)
}

func TestRestoreReturnsConsumedDays(t *testing.T) {
	f := newLedgerFixture(t)
	f.assignAnnual(nil)

	_, err := f.svc.Consume(context.Background(), "emp-1", "annual", 2024,
		decimal.NewFromInt(5), midJune(2024))
	require.NoError(t, err)

	balance, err := f.svc.Restore(context.Background(), "emp-1", "annual", 2024, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, balance.BalanceDays.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, balance.ConsumedDays.IsZero())
}

func TestPolicyForWithoutAssignmentFails(t *testing.T) {
	f := newLedgerFixture(t)

	_, _, err := f.svc.PolicyFor(context.Background(), "emp-1", "annual", midJune(2024))
	assert.ErrorIs(t, err, leave.ErrNoPolicyAssigned)

	_, err = f.svc.GetBalance(context.Background(), "emp-1", "annual", 2024, midJune(2024))
	assert.ErrorIs(t, err, leave.ErrNoPolicyAssigned)
}
