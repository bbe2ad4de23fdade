package payroll

import "context"

type PayrollService interface {
	// Calculate evaluates the owner over an inclusive date range. It is a
	// pure function of the ledgers and configuration: identical inputs give
	// identical statements.
	Calculate(ctx context.Context, req CalculateRequest) (Statement, error)

	GetSalary(ctx context.Context, ownerID string) (SalaryConfig, error)
	UpsertSalary(ctx context.Context, req UpsertSalaryRequest) (SalaryConfig, error)
}
