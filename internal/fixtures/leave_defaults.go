package fixtures

import (
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
)

// DefaultBalancePolicies is the allowance table written on first boot, before
// an admin has configured anything. The unpaid type carries no policy row; it
// is unlimited by definition.
func DefaultBalancePolicies() []leave.BalancePolicy {
	return []leave.BalancePolicy{
		{Type: leave.TypeEmergency, AnnualAllowance: 5},
		{Type: leave.TypeCasual, AnnualAllowance: 12},
		{Type: leave.TypeFestival, AnnualAllowance: 8},
		{Type: leave.TypeSick, AnnualAllowance: 10},
	}
}
