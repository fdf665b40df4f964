package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/payroll"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

type PayrollRunRepository struct {
	mu      sync.RWMutex
	runs    map[string]payroll.PayrollRun
	entries map[string][]payroll.PayrollEntry
}

func NewPayrollRunRepository() *PayrollRunRepository {
	return &PayrollRunRepository{
		runs:    make(map[string]payroll.PayrollRun),
		entries: make(map[string][]payroll.PayrollEntry),
	}
}

func (r *PayrollRunRepository) FindOverlapping(_ context.Context, start, end time.Time) ([]payroll.PayrollRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []payroll.PayrollRun
	for _, run := range r.runs {
		if dateutil.Overlaps(run.StartDate, run.EndDate, start, end) {
			result = append(result, run)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (r *PayrollRunRepository) CreateRun(_ context.Context, run payroll.PayrollRun, entries []payroll.PayrollEntry) (payroll.PayrollRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The overlap check happens under the same lock as the insert, which
	// is this store's equivalent of the SQL exclusion constraint.
	for _, existing := range r.runs {
		if dateutil.Overlaps(existing.StartDate, existing.EndDate, run.StartDate, run.EndDate) {
			return payroll.PayrollRun{}, fmt.Errorf("%w: run %s (%s)", payroll.ErrPeriodOverlap, existing.ID, existing.Period)
		}
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.CreatedAt = time.Now()

	stored := make([]payroll.PayrollEntry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.RunID = run.ID
		e.CreatedAt = run.CreatedAt
		stored[i] = e
	}

	r.runs[run.ID] = run
	r.entries[run.ID] = stored
	return run, nil
}

func (r *PayrollRunRepository) GetRun(_ context.Context, id string) (payroll.PayrollRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (r *PayrollRunRepository) ListRuns(_ context.Context) ([]payroll.PayrollRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []payroll.PayrollRun
	for _, run := range r.runs {
		result = append(result, run)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (r *PayrollRunRepository) GetEntries(_ context.Context, runID string) ([]payroll.PayrollEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.runs[runID]; !ok {
		return nil, payroll.ErrRunNotFound
	}
	entries := make([]payroll.PayrollEntry, len(r.entries[runID]))
	copy(entries, r.entries[runID])
	return entries, nil
}

func (r *PayrollRunRepository) DeleteRun(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[id]; !ok {
		return payroll.ErrRunNotFound
	}
	delete(r.runs, id)
	delete(r.entries, id)
	return nil
}
