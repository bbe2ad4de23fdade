package timeentry

import (
	"context"
	"time"
)

// TimeEntryRepository - interface for the time_entries table.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	GetByID(ctx context.Context, id string) (TimeEntry, error)
	GetActive(ctx context.Context, ownerID string) (TimeEntry, error)

	// CloseActive sets end_time = at on every open entry for the owner and
	// returns the entries it closed. This is the conditional write that
	// enforces the single-active-timer invariant at the data layer; it must
	// run in the same transaction as the insert of the replacement entry.
	CloseActive(ctx context.Context, ownerID string, at time.Time) ([]TimeEntry, error)

	// ListRange returns entries with start_time in the half-open interval
	// [from, to), ordered by start_time.
	ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]TimeEntry, error)

	// MarkStatus updates the lifecycle status of the given entries.
	MarkStatus(ctx context.Context, ids []string, status LifecycleStatus) error

	Delete(ctx context.Context, id string) error
}
