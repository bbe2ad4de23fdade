package leave

import (
	"context"
	"time"
)

// TimeOffRepository - interface for the time_off_requests table.
type TimeOffRepository interface {
	Create(ctx context.Context, request TimeOffRequest) (TimeOffRequest, error)
	GetByID(ctx context.Context, id string) (TimeOffRequest, error)
	Update(ctx context.Context, request TimeOffRequest) (TimeOffRequest, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, reviewedBy string, reviewedAt time.Time) error
	ListByOwner(ctx context.Context, ownerID string, filter RequestFilter) ([]TimeOffRequest, error)

	// ListApprovedOverlapping returns approved requests whose inclusive
	// [start_date, end_date] range intersects [from, to].
	ListApprovedOverlapping(ctx context.Context, ownerID string, from, to time.Time) ([]TimeOffRequest, error)

	// SumApprovedDays totals the day-counts of approved requests of one type
	// starting within the given year.
	SumApprovedDays(ctx context.Context, ownerID string, leaveType LeaveType, year int) (float64, error)
}

// BalancePolicyRepository - interface for the leave_balance_policies table.
type BalancePolicyRepository interface {
	Get(ctx context.Context, leaveType LeaveType) (BalancePolicy, error)
	List(ctx context.Context) ([]BalancePolicy, error)
	Upsert(ctx context.Context, policy BalancePolicy) (BalancePolicy, error)
}
