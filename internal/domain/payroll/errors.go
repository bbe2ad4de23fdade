package payroll

import "errors"

var (
	// ErrSalaryNotConfigured - payroll requested for an owner with no salary
	// record; surfaced as "not computable", never a crash.
	ErrSalaryNotConfigured = errors.New("no salary configuration for this owner")

	// ErrInvalidPeriod - start after end, or a zero-length period that would
	// divide by zero.
	ErrInvalidPeriod = errors.New("invalid payroll period")
)
