// Package memory provides in-memory repository implementations used by
// service tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

// Put seeds or replaces an employee, assigning an id when missing.
func (r *EmployeeRepository) Put(e employee.Employee) employee.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.UpdatedAt = time.Now()
	r.employees[e.ID] = e
	return e
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []employee.Employee
	for _, e := range r.employees {
		if e.Status == employee.StatusActive {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *EmployeeRepository) ListByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []employee.Employee
	for _, id := range ids {
		if e, ok := r.employees[id]; ok {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *EmployeeRepository) UpdateStatus(_ context.Context, id string, status employee.EmploymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	r.employees[id] = e
	return nil
}

type DepartmentRepository struct {
	mu          sync.RWMutex
	departments map[string]employee.Department
}

func NewDepartmentRepository() *DepartmentRepository {
	return &DepartmentRepository{departments: make(map[string]employee.Department)}
}

func (r *DepartmentRepository) Put(d employee.Department) employee.Department {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	r.departments[d.ID] = d
	return d
}

func (r *DepartmentRepository) GetByID(_ context.Context, id string) (employee.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.departments[id]
	if !ok {
		return employee.Department{}, employee.ErrDepartmentNotFound
	}
	return d, nil
}

func (r *DepartmentRepository) List(_ context.Context) ([]employee.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []employee.Department
	for _, d := range r.departments {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
