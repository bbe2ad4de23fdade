package calendar

import (
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
)

type UpdateWorkCalendarRequest struct {
	StartDay       string   `json:"start_day"` // lowercase weekday name
	DaysPerWeek    int      `json:"days_per_week"`
	MinWeeklyHours *float64 `json:"min_weekly_hours"`
	MinDailyHours  *float64 `json:"min_daily_hours"`
}

func (r *UpdateWorkCalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDay) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_day",
			Message: "start_day is required",
		})
	} else if _, ok := validator.IsValidWeekday(r.StartDay); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_day",
			Message: "start_day must be a weekday name (e.g. monday)",
		})
	}

	if r.DaysPerWeek < 1 || r.DaysPerWeek > 7 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_per_week",
			Message: "days_per_week must be between 1 and 7",
		})
	}

	if r.MinWeeklyHours != nil && (*r.MinWeeklyHours < 0 || *r.MinWeeklyHours > 168) {
		errs = append(errs, validator.ValidationError{
			Field:   "min_weekly_hours",
			Message: "min_weekly_hours must be between 0 and 168",
		})
	}

	if r.MinDailyHours != nil && (*r.MinDailyHours < 0 || *r.MinDailyHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "min_daily_hours",
			Message: "min_daily_hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Weekday resolves the validated start_day string.
func (r *UpdateWorkCalendarRequest) Weekday() time.Weekday {
	d, _ := validator.IsValidWeekday(r.StartDay)
	return d
}

type WorkCalendarResponse struct {
	StartDay       string  `json:"start_day"`
	DaysPerWeek    int     `json:"days_per_week"`
	MinWeeklyHours float64 `json:"min_weekly_hours"`
	MinDailyHours  float64 `json:"min_daily_hours"`
}
