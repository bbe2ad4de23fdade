package calendar

import "time"

// WorkCalendarConfig defines the shape of the work week. Every hour target
// and payroll work-day decision derives from this one record.
type WorkCalendarConfig struct {
	ID             string
	StartDay       time.Weekday // day-of-week the work week begins
	DaysPerWeek    int          // contiguous working days starting at StartDay
	MinWeeklyHours float64
	MinDailyHours  float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Default returns the configuration used until an admin edits it:
// Monday-start, five-day week, 40h weekly / 8h daily targets.
func Default() WorkCalendarConfig {
	return WorkCalendarConfig{
		StartDay:       time.Monday,
		DaysPerWeek:    5,
		MinWeeklyHours: 40,
		MinDailyHours:  8,
	}
}

// IsWorkDay reports whether d falls on a configured working day.
func (c WorkCalendarConfig) IsWorkDay(d time.Time) bool {
	offset := (int(d.Weekday()) - int(c.StartDay) + 7) % 7
	return offset < c.DaysPerWeek
}

// WeekStart normalizes d to midnight UTC of the configured week-start day on
// or before d. Timesheets are always keyed by this normalized date.
func (c WorkCalendarConfig) WeekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) - int(c.StartDay) + 7) % 7
	return day.AddDate(0, 0, -offset)
}
