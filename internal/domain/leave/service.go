package leave

import (
	"context"
	"time"
)

type LeaveService interface {
	// Book creates a pending request. A half-day booking is forced to a
	// single-day range.
	Book(ctx context.Context, ownerID string, req BookRequest) (TimeOffRequest, error)

	// EditPending updates a request in place while it is still pending.
	EditPending(ctx context.Context, ownerID string, req EditRequest) (TimeOffRequest, error)

	// Review approves or rejects. Re-applying the same decision is a no-op.
	Review(ctx context.Context, reviewerID string, req ReviewRequest) (TimeOffRequest, error)

	// Balance is allowance minus approved day-counts for the year of asOf,
	// floored at zero. The unpaid type always reports unlimited.
	Balance(ctx context.Context, ownerID string, leaveType LeaveType, asOf time.Time) (Balance, error)

	// Balances reports every type's balance at once.
	Balances(ctx context.Context, ownerID string, asOf time.Time) ([]Balance, error)

	// IsOnApprovedLeave answers for a single calendar date. Pending and
	// rejected requests never count.
	IsOnApprovedLeave(ctx context.Context, ownerID string, date time.Time) (DayInfo, error)

	ListRequests(ctx context.Context, ownerID string, filter RequestFilter) ([]TimeOffRequest, error)

	ListPolicies(ctx context.Context) ([]BalancePolicy, error)
	UpsertPolicy(ctx context.Context, req UpsertPolicyRequest) (BalancePolicy, error)
}
