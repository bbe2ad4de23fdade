package leave

import (
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
)

type BookRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	IsHalfDay bool   `json:"is_half_day"`
	Reason    string `json:"reason"`
}

func (r *BookRequest) Validate() error {
	var errs validator.ValidationErrors

	if !LeaveType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of emergency, casual, festival, sick, unpaid",
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
	if r.EndDate != "" && !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a YYYY-MM-DD date",
		})
	}

	// A half-day booking is always a single day; the range is corrected to
	// start_date by the service rather than rejected here.
	if startOK && endOK && !r.IsHalfDay && end.Before(start) {
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

// Dates returns the parsed range with the half-day correction applied.
// Call only after Validate.
func (r *BookRequest) Dates() (start, end time.Time) {
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	if r.IsHalfDay || r.EndDate == "" {
		end = start
	}
	return start, end
}

type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

type ReviewRequest struct {
	RequestID string `json:"request_id"`
	Decision  string `json:"decision"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if !validator.IsInSlice(r.Decision, []string{string(DecisionApprove), string(DecisionReject)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EditRequest updates a still-pending request in place, id preserved.
type EditRequest struct {
	RequestID string `json:"request_id"`
	BookRequest
}

func (r *EditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if err := r.BookRequest.Validate(); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, fieldErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpsertPolicyRequest struct {
	Type            string  `json:"type"`
	AnnualAllowance float64 `json:"annual_allowance"`
}

func (r *UpsertPolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !LeaveType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of emergency, casual, festival, sick, unpaid",
		})
	}

	if r.AnnualAllowance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_allowance",
			Message: "annual_allowance must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeOffResponse struct {
	ID         string  `json:"id"`
	OwnerID    string  `json:"owner_id"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	IsHalfDay  bool    `json:"is_half_day"`
	Reason     string  `json:"reason,omitempty"`
	Status     string  `json:"status"`
	DayCount   float64 `json:"day_count"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
}

func NewResponse(r TimeOffRequest) TimeOffResponse {
	return TimeOffResponse{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		Type:       string(r.Type),
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		IsHalfDay:  r.IsHalfDay,
		Reason:     r.Reason,
		Status:     string(r.Status),
		DayCount:   r.DayCount(),
		ReviewedBy: r.ReviewedBy,
	}
}

type BalanceResponse struct {
	Type      string   `json:"type"`
	Days      *float64 `json:"days,omitempty"` // nil when unlimited
	Unlimited bool     `json:"unlimited"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	resp := BalanceResponse{Type: string(b.Type), Unlimited: b.Unlimited}
	if !b.Unlimited {
		days := b.Days
		resp.Days = &days
	}
	return resp
}

// RequestFilter narrows owner request listings.
type RequestFilter struct {
	Status    *RequestStatus
	Type      *LeaveType
	StartDate *time.Time
	EndDate   *time.Time
}
