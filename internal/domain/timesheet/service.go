package timesheet

import (
	"context"
	"time"
)

type TimesheetService interface {
	// WorkedHours sums non-break entry durations within the week containing
	// the given date, in fractional hours. Open entries are measured against
	// the current instant.
	WorkedHours(ctx context.Context, ownerID string, weekStart time.Time) (float64, error)

	// LeaveCreditHours counts approved paid leave across the 7 days of the
	// week: 8 per full day, 4 per half day. Unpaid leave credits nothing.
	LeaveCreditHours(ctx context.Context, ownerID string, weekStart time.Time) (float64, error)

	// Submit computes the weekly total, rejects it below the configured
	// minimum, and otherwise writes the submission record and flips every
	// counted entry to submitted, atomically.
	Submit(ctx context.Context, ownerID string, weekStart time.Time) (WeeklyTimesheet, error)

	// Review moves a submitted timesheet to approved or rejected. Approved
	// is terminal.
	Review(ctx context.Context, reviewerID string, req ReviewRequest) (WeeklyTimesheet, error)

	Get(ctx context.Context, ownerID string, weekStart time.Time) (WeeklyTimesheet, error)
	WeeklySummary(ctx context.Context, ownerID string, weekStart time.Time) (WeeklySummary, error)
}
