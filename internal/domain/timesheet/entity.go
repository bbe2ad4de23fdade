package timesheet

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Credit hours granted per approved paid leave day when counting toward the
// weekly minimum.
const (
	FullDayCreditHours = 8.0
	HalfDayCreditHours = 4.0
)

// WeeklyTimesheet is the submission record for one (owner, week) pair. Its id
// is a pure function of that pair, so resubmission overwrites rather than
// duplicates.
type WeeklyTimesheet struct {
	ID         string
	OwnerID    string
	WeekStart  time.Time // normalized to the calendar's week-start day
	Status     Status
	TotalHours float64 // snapshot taken at submission time

	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	ReviewedBy  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// namespace for deterministic timesheet ids.
var timesheetNamespace = uuid.MustParse("9f2c1af6-85a1-4e6f-9f70-4c1b2d83a001")

// DeterministicID derives the timesheet id from owner and normalized week
// start. Retried submissions land on the same key.
func DeterministicID(ownerID string, weekStart time.Time) string {
	name := fmt.Sprintf("%s/%s", ownerID, weekStart.UTC().Format("2006-01-02"))
	return uuid.NewSHA1(timesheetNamespace, []byte(name)).String()
}
