package payroll

import (
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	OwnerID   string `json:"owner_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD, inclusive
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OwnerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "owner_id",
			Message: "owner_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a YYYY-MM-DD date",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a YYYY-MM-DD date",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed period. Call only after Validate.
func (r *CalculateRequest) Dates() (start, end time.Time) {
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	return start, end
}

type UpsertSalaryRequest struct {
	OwnerID    string `json:"owner_id"`
	BaseSalary string `json:"base_salary"` // decimal string
	Currency   string `json:"currency"`
}

func (r *UpsertSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OwnerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "owner_id",
			Message: "owner_id is required",
		})
	}

	if amount, err := decimal.NewFromString(r.BaseSalary); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be a decimal number",
		})
	} else if amount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	if validator.IsEmpty(r.Currency) {
		errs = append(errs, validator.ValidationError{
			Field:   "currency",
			Message: "currency is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Amount returns the parsed salary. Call only after Validate.
func (r *UpsertSalaryRequest) Amount() decimal.Decimal {
	amount, _ := decimal.NewFromString(r.BaseSalary)
	return amount
}

type StatementResponse struct {
	OwnerID      string `json:"owner_id"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	DaysInPeriod int    `json:"days_in_period"`
	WorkDays     int    `json:"work_days"`
	LopDays      string `json:"lop_days"`
	MissedDays   int    `json:"missed_days"`
	BaseSalary   string `json:"base_salary"`
	DailyRate    string `json:"daily_rate"`
	Deduction    string `json:"deduction"`
	NetSalary    string `json:"net_salary"`
	Currency     string `json:"currency"`
}

func NewStatementResponse(s Statement) StatementResponse {
	return StatementResponse{
		OwnerID:      s.OwnerID,
		PeriodStart:  s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:    s.PeriodEnd.Format("2006-01-02"),
		DaysInPeriod: s.DaysInPeriod,
		WorkDays:     s.WorkDays,
		LopDays:      s.LopDays.String(),
		MissedDays:   s.MissedDays,
		BaseSalary:   s.BaseSalary.String(),
		DailyRate:    s.DailyRate.StringFixed(2),
		Deduction:    s.Deduction.StringFixed(2),
		NetSalary:    s.NetSalary.StringFixed(2),
		Currency:     s.Currency,
	}
}

type SalaryResponse struct {
	OwnerID    string `json:"owner_id"`
	BaseSalary string `json:"base_salary"`
	Currency   string `json:"currency"`
}

func NewSalaryResponse(c SalaryConfig) SalaryResponse {
	return SalaryResponse{
		OwnerID:    c.OwnerID,
		BaseSalary: c.BaseSalary.String(),
		Currency:   c.Currency,
	}
}
