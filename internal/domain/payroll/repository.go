package payroll

import "context"

// SalaryConfigRepository - interface for the salary_configs table.
type SalaryConfigRepository interface {
	Get(ctx context.Context, ownerID string) (SalaryConfig, error)
	Upsert(ctx context.Context, cfg SalaryConfig) (SalaryConfig, error)
}
