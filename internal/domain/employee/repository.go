package employee

import "context"

// EmployeeRepository is the read side of the employee directory plus the
// single status mutation the leave workflow needs. Full employee CRUD
// lives outside this core.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
	UpdateStatus(ctx context.Context, id string, status EmploymentStatus) error
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
}
