package timeentry

import "time"

// EntryKind distinguishes clocked work from breaks. Breaks appear in day and
// week listings but never count toward worked hours.
type EntryKind string

const (
	KindWork  EntryKind = "work"
	KindBreak EntryKind = "break"
)

// ProjectBreak is the sentinel project id that marks an entry as a break.
const ProjectBreak = "break"

// LifecycleStatus tracks an entry through the weekly submission workflow.
type LifecycleStatus string

const (
	StatusDraft     LifecycleStatus = "draft"
	StatusSubmitted LifecycleStatus = "submitted"
	StatusApproved  LifecycleStatus = "approved"
	StatusRejected  LifecycleStatus = "rejected"
)

// TimeEntry is one clock session. EndTime nil means the timer is still
// running; for a given owner at most one entry is open at any instant.
type TimeEntry struct {
	ID        string
	OwnerID   string
	ProjectID string
	Label     string
	StartTime time.Time
	EndTime   *time.Time
	Kind      EntryKind
	Status    LifecycleStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the entry is a running timer.
func (e TimeEntry) IsOpen() bool {
	return e.EndTime == nil
}

// Duration returns the elapsed time of the entry. An open entry is measured
// against now on every read; the elapsed value is never stored.
func (e TimeEntry) Duration(now time.Time) time.Duration {
	if e.EndTime != nil {
		return e.EndTime.Sub(e.StartTime)
	}
	d := now.Sub(e.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Hours returns the entry duration in fractional hours.
func (e TimeEntry) Hours(now time.Time) float64 {
	return e.Duration(now).Hours()
}
