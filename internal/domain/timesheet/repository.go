package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository - interface for the weekly_timesheets table. Upsert is
// keyed on the deterministic id, so a retried submission overwrites.
type TimesheetRepository interface {
	Upsert(ctx context.Context, sheet WeeklyTimesheet) (WeeklyTimesheet, error)
	GetByID(ctx context.Context, id string) (WeeklyTimesheet, error)
	GetByOwnerWeek(ctx context.Context, ownerID string, weekStart time.Time) (WeeklyTimesheet, error)
	UpdateStatus(ctx context.Context, id string, status Status, reviewedBy string, reviewedAt time.Time) error
}
