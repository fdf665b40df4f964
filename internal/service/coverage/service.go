package coverage

import (
	"context"
	"fmt"
	"sort"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/config"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/coverage"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/validator"
)

type CoverageServiceImpl struct {
	vacationRepo   vacation.VacationRequestRepository
	employeeRepo   employee.EmployeeRepository
	departmentRepo employee.DepartmentRepository
	cfg            config.CoverageConfig
}

func NewCoverageService(
	vacationRepo vacation.VacationRequestRepository,
	employeeRepo employee.EmployeeRepository,
	departmentRepo employee.DepartmentRepository,
	cfg config.CoverageConfig,
) coverage.CoverageService {
	return &CoverageServiceImpl{
		vacationRepo:   vacationRepo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		cfg:            cfg,
	}
}

func (s *CoverageServiceImpl) Check(ctx context.Context, req coverage.CheckCoverageRequest) (coverage.CoverageReport, error) {
	if err := req.Validate(); err != nil {
		return coverage.CoverageReport{}, err
	}
	threshold := req.Threshold
	if threshold == 0 {
		threshold = s.cfg.DefaultThreshold
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	start, end = dateutil.Date(start), dateutil.Date(end)

	requests, err := s.vacationRepo.ListApprovedInRange(ctx, start, end)
	if err != nil {
		return coverage.CoverageReport{}, err
	}

	departments, err := s.departmentNames(ctx)
	if err != nil {
		return coverage.CoverageReport{}, err
	}

	employeeDept, err := s.departmentByEmployee(ctx, requests)
	if err != nil {
		return coverage.CoverageReport{}, err
	}

	report := coverage.CoverageReport{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Threshold: threshold,
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		// employee ids on leave this day, bucketed by department
		buckets := make(map[string][]string)
		for _, r := range requests {
			if day.Before(dateutil.Date(r.StartDate)) || day.After(dateutil.Date(r.EndDate)) {
				continue
			}
			dept := employeeDept[r.EmployeeID]
			buckets[dept] = append(buckets[dept], r.EmployeeID)
		}

		dc := coverage.DayCoverage{Date: day.Format("2006-01-02")}
		deptIDs := make([]string, 0, len(buckets))
		for id := range buckets {
			deptIDs = append(deptIDs, id)
		}
		sort.Strings(deptIDs)

		for _, deptID := range deptIDs {
			ids := buckets[deptID]
			sort.Strings(ids)
			count := coverage.DepartmentCount{
				DepartmentID:   deptID,
				DepartmentName: departments[deptID],
				OnLeave:        len(ids),
				EmployeeIDs:    ids,
				Flagged:        len(ids) >= threshold,
			}
			if count.Flagged {
				dc.Flagged = true
			}
			dc.Departments = append(dc.Departments, count)
		}
		report.Days = append(report.Days, dc)
	}

	return report, nil
}

func (s *CoverageServiceImpl) ValidateAssignment(ctx context.Context, req coverage.ValidateAssignmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	date, _ := validator.IsValidDate(req.Date)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return err
	}

	covering, err := s.vacationRepo.FindApprovedCovering(ctx, req.EmployeeID, date)
	if err != nil {
		return err
	}
	if len(covering) > 0 {
		return fmt.Errorf("%w: employee %s is on approved leave %s..%s (request %s)",
			coverage.ErrAssignmentConflict,
			req.EmployeeID,
			covering[0].StartDate.Format("2006-01-02"),
			covering[0].EndDate.Format("2006-01-02"),
			covering[0].ID,
		)
	}
	return nil
}

func (s *CoverageServiceImpl) departmentNames(ctx context.Context) (map[string]string, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return names, nil
}

func (s *CoverageServiceImpl) departmentByEmployee(ctx context.Context, requests []vacation.VacationRequest) (map[string]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range requests {
		if _, ok := seen[r.EmployeeID]; ok {
			continue
		}
		seen[r.EmployeeID] = struct{}{}
		ids = append(ids, r.EmployeeID)
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	employees, err := s.employeeRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	depts := make(map[string]string, len(employees))
	for _, e := range employees {
		depts[e.ID] = e.DepartmentID
	}
	return depts, nil
}
