package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/payroll"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryConfigRepositoryImpl struct {
	db *database.DB
}

func NewSalaryConfigRepository(db *database.DB) payroll.SalaryConfigRepository {
	return &salaryConfigRepositoryImpl{db: db}
}

func (r *salaryConfigRepositoryImpl) Get(ctx context.Context, ownerID string) (payroll.SalaryConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT owner_id, base_salary, currency, created_at, updated_at
		FROM salary_configs
		WHERE owner_id = $1
	`

	var cfg payroll.SalaryConfig
	err := q.QueryRow(ctx, query, ownerID).Scan(
		&cfg.OwnerID,
		&cfg.BaseSalary,
		&cfg.Currency,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryConfig{}, payroll.ErrSalaryNotConfigured
		}
		return payroll.SalaryConfig{}, err
	}

	return cfg, nil
}

func (r *salaryConfigRepositoryImpl) Upsert(ctx context.Context, cfg payroll.SalaryConfig) (payroll.SalaryConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_configs (owner_id, base_salary, currency, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (owner_id)
		DO UPDATE SET base_salary = EXCLUDED.base_salary, currency = EXCLUDED.currency, updated_at = NOW()
		RETURNING owner_id, base_salary, currency, created_at, updated_at
	`

	var saved payroll.SalaryConfig
	err := q.QueryRow(ctx, query, cfg.OwnerID, cfg.BaseSalary, cfg.Currency).Scan(
		&saved.OwnerID,
		&saved.BaseSalary,
		&saved.Currency,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return payroll.SalaryConfig{}, fmt.Errorf("failed to upsert salary config: %w", err)
	}

	return saved, nil
}
