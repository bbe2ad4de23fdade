package leave

import "time"

// LeaveType is the fixed enumerated set of bookable categories. "unpaid" is
// the reserved loss-of-pay type: unlimited allowance, zero credit hours, and
// it drives the payroll LOP deduction.
type LeaveType string

const (
	TypeEmergency LeaveType = "emergency"
	TypeCasual    LeaveType = "casual"
	TypeFestival  LeaveType = "festival"
	TypeSick      LeaveType = "sick"
	TypeUnpaid    LeaveType = "unpaid"
)

// Types lists every valid leave type.
func Types() []LeaveType {
	return []LeaveType{TypeEmergency, TypeCasual, TypeFestival, TypeSick, TypeUnpaid}
}

// IsValid reports whether t is a known leave type.
func (t LeaveType) IsValid() bool {
	switch t {
	case TypeEmergency, TypeCasual, TypeFestival, TypeSick, TypeUnpaid:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// TimeOffRequest is one leave booking over an inclusive date range.
type TimeOffRequest struct {
	ID        string
	OwnerID   string
	Type      LeaveType
	StartDate time.Time // calendar date, midnight UTC
	EndDate   time.Time // inclusive
	IsHalfDay bool
	Reason    string
	Status    RequestStatus

	ReviewedBy *string
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayCount is the number of days the request consumes: 0.5 for a half day,
// otherwise the inclusive span in days.
func (r TimeOffRequest) DayCount() float64 {
	if r.IsHalfDay {
		return 0.5
	}
	return float64(int(r.EndDate.Sub(r.StartDate).Hours()/24)) + 1
}

// Covers reports whether date falls within the request's inclusive range.
func (r TimeOffRequest) Covers(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(r.StartDate) && !d.After(r.EndDate)
}

// BalancePolicy maps a leave type to its annual allowance in days. The
// unpaid type never carries a finite allowance.
type BalancePolicy struct {
	Type            LeaveType
	AnnualAllowance float64
	UpdatedAt       time.Time
}

// Balance is the remaining allowance for one owner and type. Unlimited is
// set only for the reserved unpaid type.
type Balance struct {
	Type      LeaveType
	Days      float64
	Unlimited bool
}

// DayInfo answers "is this owner on approved leave on this date".
type DayInfo struct {
	OnLeave   bool
	IsHalfDay bool
	Type      LeaveType
}
