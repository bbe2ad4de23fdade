package timeentry

import (
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
)

type StartTimerRequest struct {
	ProjectID string `json:"project_id"`
	Label     string `json:"label"`
}

func (r *StartTimerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required (use \"break\" for a break timer)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ManualEntryRequest struct {
	OwnerID   string `json:"owner_id"`
	ProjectID string `json:"project_id"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"` // RFC3339
	EndTime   string `json:"end_time"`   // RFC3339
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OwnerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "owner_id",
			Message: "owner_id is required",
		})
	}

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}

	start, startOK := validator.IsValidDateTime(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be an RFC3339 timestamp",
		})
	}

	end, endOK := validator.IsValidDateTime(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be an RFC3339 timestamp",
		})
	}

	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Times returns the parsed range. Call only after Validate.
func (r *ManualEntryRequest) Times() (start, end time.Time) {
	start, _ = validator.IsValidDateTime(r.StartTime)
	end, _ = validator.IsValidDateTime(r.EndTime)
	return start.UTC(), end.UTC()
}

type TimeEntryResponse struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"owner_id"`
	ProjectID string  `json:"project_id"`
	Label     string  `json:"label,omitempty"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
	Kind      string  `json:"kind"`
	Status    string  `json:"status"`
	Hours     float64 `json:"hours"`
}

// NewResponse converts an entry, computing open-entry hours against now.
func NewResponse(e TimeEntry, now time.Time) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		ProjectID: e.ProjectID,
		Label:     e.Label,
		StartTime: e.StartTime.Format(time.RFC3339),
		Kind:      string(e.Kind),
		Status:    string(e.Status),
		Hours:     e.Hours(now),
	}
	if e.EndTime != nil {
		end := e.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	return resp
}
