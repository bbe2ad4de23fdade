package timeentry

import (
	"context"
	"time"
)

type TimeEntryService interface {
	// StartTimer opens a new entry for the owner, implicitly stopping any
	// running timer at the current instant.
	StartTimer(ctx context.Context, ownerID string, req StartTimerRequest) (TimeEntry, error)

	// StopTimer closes the owner's active entry. ErrNoActiveTimer if none.
	StopTimer(ctx context.Context, ownerID string) (TimeEntry, error)

	// RecordManualEntry is an administrative insert; the entry is created
	// already approved and bypasses the submission workflow.
	RecordManualEntry(ctx context.Context, req ManualEntryRequest) (TimeEntry, error)

	// DeleteEntry is a hard delete, reserved for administrative correction.
	DeleteEntry(ctx context.Context, id string) error

	ActiveEntry(ctx context.Context, ownerID string) (TimeEntry, error)
	EntriesForDay(ctx context.Context, ownerID string, day time.Time) ([]TimeEntry, error)
	EntriesForWeek(ctx context.Context, ownerID string, weekStart time.Time) ([]TimeEntry, error)
}
