package calendar

import "context"

// WorkCalendarRepository - interface for the work_calendar table.
// Get falls back to Default() when no row has been written yet.
type WorkCalendarRepository interface {
	Get(ctx context.Context) (WorkCalendarConfig, error)
	Upsert(ctx context.Context, cfg WorkCalendarConfig) (WorkCalendarConfig, error)

	// Seed writes cfg only when no calendar row exists yet; admin edits are
	// never overwritten by a restart.
	Seed(ctx context.Context, cfg WorkCalendarConfig) error
}
