package leave

import "errors"

var (
	ErrRequestNotFound   = errors.New("time-off request not found")
	ErrAlreadyReviewed   = errors.New("time-off request already reviewed with a different decision")
	ErrNotPending        = errors.New("only pending requests can be edited")
	ErrUnknownLeaveType  = errors.New("unknown leave type")
	ErrReservedLeaveType = errors.New("the unpaid leave type has no editable allowance")
	ErrPolicyNotFound    = errors.New("no balance policy for this leave type")
)
