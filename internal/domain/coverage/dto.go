package coverage

import "github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/validator"

type CheckCoverageRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	// Threshold of concurrently absent employees per department per day at
	// which a date is flagged. Zero means "use the configured default".
	Threshold int `json:"threshold,omitempty"`
}

func (r *CheckCoverageRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if r.Threshold < 0 {
		errs = append(errs, validator.ValidationError{Field: "threshold", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DepartmentCount struct {
	DepartmentID   string   `json:"department_id"`
	DepartmentName string   `json:"department_name"`
	OnLeave        int      `json:"on_leave"`
	EmployeeIDs    []string `json:"employee_ids"`
	Flagged        bool     `json:"flagged"`
}

type DayCoverage struct {
	Date        string            `json:"date"`
	Departments []DepartmentCount `json:"departments"`
	Flagged     bool              `json:"flagged"`
}

type CoverageReport struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Threshold int           `json:"threshold"`
	Days      []DayCoverage `json:"days"`
}

type ValidateAssignmentRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *ValidateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
