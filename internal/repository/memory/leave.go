package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/leave"
)

type PolicyRepository struct {
	mu          sync.RWMutex
	policies    map[string]leave.AccrualPolicy
	assignments map[string]leave.EmployeePolicy
}

func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{
		policies:    make(map[string]leave.AccrualPolicy),
		assignments: make(map[string]leave.EmployeePolicy),
	}
}

func (r *PolicyRepository) PutPolicy(p leave.AccrualPolicy) leave.AccrualPolicy {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.policies[p.ID] = p
	return p
}

func (r *PolicyRepository) PutAssignment(a leave.EmployeePolicy) leave.EmployeePolicy {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	r.assignments[a.ID] = a
	return a
}

func (r *PolicyRepository) GetByID(_ context.Context, id string) (leave.AccrualPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[id]
	if !ok {
		return leave.AccrualPolicy{}, leave.ErrPolicyNotFound
	}
	return p, nil
}

func (r *PolicyRepository) GetByLeaveType(_ context.Context, leaveType string) ([]leave.AccrualPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []leave.AccrualPolicy
	for _, p := range r.policies {
		if p.LeaveType == leaveType {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EffectiveFrom.Before(result[j].EffectiveFrom) })
	return result, nil
}

func (r *PolicyRepository) ListEmployeePolicies(_ context.Context, employeeID string) ([]leave.EmployeePolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []leave.EmployeePolicy
	for _, a := range r.assignments {
		if a.EmployeeID == employeeID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EffectiveFrom.Before(result[j].EffectiveFrom) })
	return result, nil
}

type balanceKey struct {
	EmployeeID string
	LeaveType  string
	Year       int
}

type BalanceRepository struct {
	mu       sync.RWMutex
	balances map[balanceKey]leave.Balance
}

func NewBalanceRepository() *BalanceRepository {
	return &BalanceRepository{balances: make(map[balanceKey]leave.Balance)}
}

func (r *BalanceRepository) Get(_ context.Context, employeeID, leaveType string, year int) (leave.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.balances[balanceKey{employeeID, leaveType, year}]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (r *BalanceRepository) Upsert(_ context.Context, balance leave.Balance) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey{balance.EmployeeID, balance.LeaveType, balance.Year}
	if existing, ok := r.balances[key]; ok {
		balance.ID = existing.ID
		balance.CreatedAt = existing.CreatedAt
	} else {
		balance.ID = uuid.New().String()
		balance.CreatedAt = time.Now()
	}
	balance.UpdatedAt = time.Now()
	r.balances[key] = balance
	return balance, nil
}
