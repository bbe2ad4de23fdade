package timeentry

import "errors"

var (
	ErrEntryNotFound = errors.New("time entry not found")
	ErrNoActiveTimer = errors.New("no active timer for this owner")

	// ErrTimerConflict is kept for strict-rejection deployments; the engine
	// itself auto-closes the previous timer instead of raising it.
	ErrTimerConflict = errors.New("an active timer already exists for this owner")
)
