package timesheet

import (
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD, any day in the week
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a YYYY-MM-DD date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Date returns the parsed week reference. Call only after Validate.
func (r *SubmitRequest) Date() time.Time {
	d, _ := validator.IsValidDate(r.WeekStart)
	return d
}

type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

type ReviewRequest struct {
	TimesheetID string `json:"timesheet_id"`
	Decision    string `json:"decision"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimesheetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "timesheet_id",
			Message: "timesheet_id is required",
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

type TimesheetResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	WeekStart   string  `json:"week_start"`
	Status      string  `json:"status"`
	TotalHours  float64 `json:"total_hours"`
	SubmittedAt *string `json:"submitted_at,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
}

func NewResponse(t WeeklyTimesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:         t.ID,
		OwnerID:    t.OwnerID,
		WeekStart:  t.WeekStart.Format("2006-01-02"),
		Status:     string(t.Status),
		TotalHours: t.TotalHours,
	}
	if t.SubmittedAt != nil {
		s := t.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &s
	}
	if t.ApprovedAt != nil {
		s := t.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	return resp
}

// WeeklySummary is the dashboard projection for one owner and week.
type WeeklySummary struct {
	WeekStart        time.Time
	WorkedHours      float64
	LeaveCreditHours float64
	TotalHours       float64
	MinWeeklyHours   float64
	HasActiveTimer   bool
	Submission       *WeeklyTimesheet // nil while still draft
}
