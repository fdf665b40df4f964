package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/validator"
)

// ScenarioToggles suppresses whole event categories for a single run.
// A disabled category yields an absent breakdown key, not a zero.
type ScenarioToggles struct {
	DisableBonuses    bool `json:"disable_bonuses,omitempty"`
	DisableAllowances bool `json:"disable_allowances,omitempty"`
	DisableOvertime   bool `json:"disable_overtime,omitempty"`
	DisableDeductions bool `json:"disable_deductions,omitempty"`
	DisablePenalties  bool `json:"disable_penalties,omitempty"`
}

type GeneratePayrollRequest struct {
	Period    string           `json:"period"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Toggles   *ScenarioToggles `json:"scenario_toggles,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "is required"})
	}

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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed period bounds. Call Validate first.
func (r *GeneratePayrollRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type PayrollEntryResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	BaseSalary  decimal.Decimal `json:"base_salary"`
	BonusAmount decimal.Decimal `json:"bonus_amount"`

	StandardWorkingDays int `json:"standard_working_days"`
	ActualWorkingDays   int `json:"actual_working_days"`
	VacationDays        int `json:"vacation_days"`

	LoanDeduction   decimal.Decimal `json:"loan_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	TaxDeduction    decimal.Decimal `json:"tax_deduction"`
	SocialDeduction decimal.Decimal `json:"social_deduction"`
	HealthDeduction decimal.Decimal `json:"health_deduction"`

	GrossPay decimal.Decimal `json:"gross_pay"`
	NetPay   decimal.Decimal `json:"net_pay"`

	AdditionsDetail  map[string]decimal.Decimal `json:"additions_detail,omitempty"`
	DeductionsDetail map[string]decimal.Decimal `json:"deductions_detail,omitempty"`

	AdjustmentReason *string `json:"adjustment_reason,omitempty"`
	EmployeeName     *string `json:"employee_name,omitempty"`
}

type PayrollRunResponse struct {
	ID              string                 `json:"id"`
	Period          string                 `json:"period"`
	StartDate       string                 `json:"start_date"`
	EndDate         string                 `json:"end_date"`
	GrossAmount     decimal.Decimal        `json:"gross_amount"`
	TotalDeductions decimal.Decimal        `json:"total_deductions"`
	NetAmount       decimal.Decimal        `json:"net_amount"`
	Status          string                 `json:"status"`
	Entries         []PayrollEntryResponse `json:"entries,omitempty"`
}

type RunSummaryResponse struct {
	Period        string          `json:"period"`
	EmployeeCount int             `json:"employee_count"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Deductions    decimal.Decimal `json:"total_deductions"`
}

func ToEntryResponse(e PayrollEntry) PayrollEntryResponse {
	return PayrollEntryResponse{
		ID:                  e.ID,
		EmployeeID:          e.EmployeeID,
		BaseSalary:          e.BaseSalary,
		BonusAmount:         e.BonusAmount,
		StandardWorkingDays: e.StandardWorkingDays,
		ActualWorkingDays:   e.ActualWorkingDays,
		VacationDays:        e.VacationDays,
		LoanDeduction:       e.LoanDeduction,
		OtherDeductions:     e.OtherDeductions,
		TaxDeduction:        e.TaxDeduction,
		SocialDeduction:     e.SocialDeduction,
		HealthDeduction:     e.HealthDeduction,
		GrossPay:            e.GrossPay,
		NetPay:              e.NetPay,
		AdditionsDetail:     e.AdditionsDetail,
		DeductionsDetail:    e.DeductionsDetail,
		AdjustmentReason:    e.AdjustmentReason,
		EmployeeName:        e.EmployeeName,
	}
}

func ToRunResponse(run PayrollRun, entries []PayrollEntry) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:              run.ID,
		Period:          run.Period,
		StartDate:       run.StartDate.Format("2006-01-02"),
		EndDate:         run.EndDate.Format("2006-01-02"),
		GrossAmount:     run.GrossAmount,
		TotalDeductions: run.TotalDeductions,
		NetAmount:       run.NetAmount,
		Status:          string(run.Status),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ToEntryResponse(e))
	}
	return resp
}
