package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/loan"
)

type LoanRepository struct {
	mu    sync.RWMutex
	loans map[string]loan.Loan
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{loans: make(map[string]loan.Loan)}
}

func (r *LoanRepository) Put(l loan.Loan) loan.Loan {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	l.UpdatedAt = time.Now()
	r.loans[l.ID] = l
	return l
}

func (r *LoanRepository) GetByID(_ context.Context, id string) (loan.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loans[id]
	if !ok {
		return loan.Loan{}, loan.ErrLoanNotFound
	}
	return l, nil
}

func (r *LoanRepository) ListActiveByEmployee(_ context.Context, employeeID string) ([]loan.Loan, error) {
	return r.listByEmployee(employeeID, true)
}

func (r *LoanRepository) ListByEmployee(_ context.Context, employeeID string) ([]loan.Loan, error) {
	return r.listByEmployee(employeeID, false)
}

func (r *LoanRepository) listByEmployee(employeeID string, activeOnly bool) ([]loan.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []loan.Loan
	for _, l := range r.loans {
		if l.EmployeeID != employeeID {
			continue
		}
		if activeOnly && (l.Status != loan.StatusActive || !l.RemainingAmount.IsPositive()) {
			continue
		}
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *LoanRepository) ApplyDeduction(_ context.Context, id string, amount decimal.Decimal) (loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok {
		return loan.Loan{}, loan.ErrLoanNotFound
	}
	if amount.GreaterThan(l.RemainingAmount) {
		return loan.Loan{}, loan.ErrInvalidDeduction
	}
	l.RemainingAmount = l.RemainingAmount.Sub(amount)
	if l.RemainingAmount.IsZero() {
		l.Status = loan.StatusCompleted
	}
	l.UpdatedAt = time.Now()
	r.loans[id] = l
	return l, nil
}

func (r *LoanRepository) PauseActiveByEmployee(_ context.Context, employeeID string) ([]string, error) {
	return r.flipStatus(employeeID, loan.StatusActive, loan.StatusPaused)
}

func (r *LoanRepository) ResumePausedByEmployee(_ context.Context, employeeID string) ([]string, error) {
	return r.flipStatus(employeeID, loan.StatusPaused, loan.StatusActive)
}

func (r *LoanRepository) flipStatus(employeeID string, from, to loan.LoanStatus) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var touched []string
	for id, l := range r.loans {
		if l.EmployeeID != employeeID || l.Status != from {
			continue
		}
		l.Status = to
		l.UpdatedAt = time.Now()
		r.loans[id] = l
		touched = append(touched, id)
	}
	sort.Strings(touched)
	return touched, nil
}
