package timesheet

import (
	"errors"
	"fmt"
)

var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrWeekApproved      = errors.New("week already approved; approved timesheets cannot be resubmitted")
	ErrNotSubmitted      = errors.New("timesheet is not awaiting review")
)

// InsufficientHoursError rejects a submission below the weekly minimum. It is
// a normal business outcome, not a fault; the shortfall is carried so the
// caller can explain it.
type InsufficientHoursError struct {
	Required  float64
	Total     float64
	Shortfall float64
}

func (e *InsufficientHoursError) Error() string {
	return fmt.Sprintf("insufficient hours: %.2f of %.2f required (short %.2f)", e.Total, e.Required, e.Shortfall)
}

// NewInsufficientHours builds the error with the shortfall precomputed.
func NewInsufficientHours(required, total float64) *InsufficientHoursError {
	return &InsufficientHoursError{Required: required, Total: total, Shortfall: required - total}
}
