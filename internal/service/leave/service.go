package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/clock"
)

type LeaveServiceImpl struct {
	leave.TimeOffRepository
	leave.BalancePolicyRepository
	clock clock.Clock
}

func NewLeaveService(timeOffRepo leave.TimeOffRepository, policyRepo leave.BalancePolicyRepository, clk clock.Clock) leave.LeaveService {
	return &LeaveServiceImpl{
		TimeOffRepository:       timeOffRepo,
		BalancePolicyRepository: policyRepo,
		clock:                   clk,
	}
}

// Book implements leave.LeaveService.
func (l *LeaveServiceImpl) Book(ctx context.Context, ownerID string, req leave.BookRequest) (leave.TimeOffRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.TimeOffRequest{}, err
	}

	// Half-day bookings are forced to a single-day range rather than
	// rejected; Dates applies the correction.
	start, end := req.Dates()

	created, err := l.TimeOffRepository.Create(ctx, leave.TimeOffRequest{
		OwnerID:   ownerID,
		Type:      leave.LeaveType(req.Type),
		StartDate: start,
		EndDate:   end,
		IsHalfDay: req.IsHalfDay,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.TimeOffRequest{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	return created, nil
}

// EditPending implements leave.LeaveService. Only the requester's own
// still-pending request can be edited, id preserved.
func (l *LeaveServiceImpl) EditPending(ctx context.Context, ownerID string, req leave.EditRequest) (leave.TimeOffRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.TimeOffRequest{}, err
	}

	current, err := l.TimeOffRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.TimeOffRequest{}, err
	}

	if current.OwnerID != ownerID {
		return leave.TimeOffRequest{}, leave.ErrRequestNotFound
	}
	if current.Status != leave.StatusPending {
		return leave.TimeOffRequest{}, leave.ErrNotPending
	}

	start, end := req.Dates()
	current.Type = leave.LeaveType(req.Type)
	current.StartDate = start
	current.EndDate = end
	current.IsHalfDay = req.IsHalfDay
	current.Reason = req.Reason

	updated, err := l.TimeOffRepository.Update(ctx, current)
	if err != nil {
		return leave.TimeOffRequest{}, fmt.Errorf("failed to update time-off request: %w", err)
	}

	return updated, nil
}

// Review implements leave.LeaveService. Re-applying the decision a request
// already carries is a no-op; flipping an already-reviewed request is an
// error.
func (l *LeaveServiceImpl) Review(ctx context.Context, reviewerID string, req leave.ReviewRequest) (leave.TimeOffRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.TimeOffRequest{}, err
	}

	request, err := l.TimeOffRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.TimeOffRequest{}, err
	}

	target := leave.StatusApproved
	if leave.ReviewDecision(req.Decision) == leave.DecisionReject {
		target = leave.StatusRejected
	}

	if request.Status == target {
		return request, nil
	}
	if request.Status != leave.StatusPending {
		return leave.TimeOffRequest{}, leave.ErrAlreadyReviewed
	}

	reviewedAt := l.clock.Now()
	if err := l.TimeOffRepository.UpdateStatus(ctx, request.ID, target, reviewerID, reviewedAt); err != nil {
		return leave.TimeOffRequest{}, fmt.Errorf("failed to update request status: %w", err)
	}

	request.Status = target
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &reviewedAt
	return request, nil
}

// Balance implements leave.LeaveService.
func (l *LeaveServiceImpl) Balance(ctx context.Context, ownerID string, leaveType leave.LeaveType, asOf time.Time) (leave.Balance, error) {
	if !leaveType.IsValid() {
		return leave.Balance{}, leave.ErrUnknownLeaveType
	}

	// The reserved loss-of-pay type has no finite allowance.
	if leaveType == leave.TypeUnpaid {
		return leave.Balance{Type: leaveType, Unlimited: true}, nil
	}

	policy, err := l.BalancePolicyRepository.Get(ctx, leaveType)
	if err != nil {
		return leave.Balance{}, err
	}

	used, err := l.TimeOffRepository.SumApprovedDays(ctx, ownerID, leaveType, asOf.Year())
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	remaining := policy.AnnualAllowance - used
	if remaining < 0 {
		remaining = 0
	}

	return leave.Balance{Type: leaveType, Days: remaining}, nil
}

// Balances implements leave.LeaveService.
func (l *LeaveServiceImpl) Balances(ctx context.Context, ownerID string, asOf time.Time) ([]leave.Balance, error) {
	var balances []leave.Balance
	for _, lt := range leave.Types() {
		b, err := l.Balance(ctx, ownerID, lt, asOf)
		if err != nil {
			if errors.Is(err, leave.ErrPolicyNotFound) {
				continue
			}
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, nil
}

// IsOnApprovedLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) IsOnApprovedLeave(ctx context.Context, ownerID string, date time.Time) (leave.DayInfo, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	requests, err := l.TimeOffRepository.ListApprovedOverlapping(ctx, ownerID, day, day)
	if err != nil {
		return leave.DayInfo{}, fmt.Errorf("failed to query approved leave: %w", err)
	}

	for _, r := range requests {
		if r.Covers(day) {
			return leave.DayInfo{OnLeave: true, IsHalfDay: r.IsHalfDay, Type: r.Type}, nil
		}
	}

	return leave.DayInfo{}, nil
}

// ListRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, ownerID string, filter leave.RequestFilter) ([]leave.TimeOffRequest, error) {
	return l.TimeOffRepository.ListByOwner(ctx, ownerID, filter)
}

// ListPolicies implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPolicies(ctx context.Context) ([]leave.BalancePolicy, error) {
	return l.BalancePolicyRepository.List(ctx)
}

// UpsertPolicy implements leave.LeaveService.
func (l *LeaveServiceImpl) UpsertPolicy(ctx context.Context, req leave.UpsertPolicyRequest) (leave.BalancePolicy, error) {
	if err := req.Validate(); err != nil {
		return leave.BalancePolicy{}, err
	}

	if leave.LeaveType(req.Type) == leave.TypeUnpaid {
		return leave.BalancePolicy{}, leave.ErrReservedLeaveType
	}

	return l.BalancePolicyRepository.Upsert(ctx, leave.BalancePolicy{
		Type:            leave.LeaveType(req.Type),
		AnnualAllowance: req.AnnualAllowance,
	})
}
