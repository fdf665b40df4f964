package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

type VacationRepository struct {
	mu       sync.RWMutex
	requests map[string]vacation.VacationRequest
}

func NewVacationRepository() *VacationRepository {
	return &VacationRepository{requests: make(map[string]vacation.VacationRequest)}
}

func cloneRequest(r vacation.VacationRequest) vacation.VacationRequest {
	chain := make([]vacation.ApprovalStep, len(r.ApprovalChain))
	copy(chain, r.ApprovalChain)
	log := make([]vacation.AuditEntry, len(r.AuditLog))
	copy(log, r.AuditLog)
	r.ApprovalChain = chain
	r.AuditLog = log
	return r
}

func (r *VacationRepository) Create(_ context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.Version = 1
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.requests[request.ID] = cloneRequest(request)
	return cloneRequest(request), nil
}

func (r *VacationRepository) GetByID(_ context.Context, id string) (vacation.VacationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return vacation.VacationRequest{}, vacation.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (r *VacationRepository) Update(_ context.Context, request vacation.VacationRequest) (vacation.VacationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.requests[request.ID]
	if !ok {
		return vacation.VacationRequest{}, vacation.ErrRequestNotFound
	}
	if stored.Version != request.Version {
		return vacation.VacationRequest{}, vacation.ErrVersionConflict
	}
	request.Version++
	request.CreatedAt = stored.CreatedAt
	request.UpdatedAt = time.Now()
	r.requests[request.ID] = cloneRequest(request)
	return cloneRequest(request), nil
}

func (r *VacationRepository) ListApprovedInRange(_ context.Context, start, end time.Time) ([]vacation.VacationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []vacation.VacationRequest
	for _, req := range r.requests {
		if req.Status != vacation.StatusApproved && req.Status != vacation.StatusCompleted {
			continue
		}
		if !dateutil.Overlaps(req.StartDate, req.EndDate, start, end) {
			continue
		}
		result = append(result, cloneRequest(req))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *VacationRepository) ListPendingOlderThan(_ context.Context, cutoff time.Time) ([]vacation.VacationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []vacation.VacationRequest
	for _, req := range r.requests {
		if req.Status != vacation.StatusPending || !req.CreatedAt.Before(cutoff) {
			continue
		}
		result = append(result, cloneRequest(req))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *VacationRepository) HasBlockingOverlap(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != vacation.StatusPending && req.Status != vacation.StatusApproved {
			continue
		}
		if dateutil.Overlaps(req.StartDate, req.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *VacationRepository) FindApprovedCovering(_ context.Context, employeeID string, date time.Time) ([]vacation.VacationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []vacation.VacationRequest
	for _, req := range r.requests {
		if req.EmployeeID != employeeID || req.Status != vacation.StatusApproved {
			continue
		}
		if dateutil.Overlaps(date, date, req.StartDate, req.EndDate) {
			result = append(result, cloneRequest(req))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
