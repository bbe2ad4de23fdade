package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type balancePolicyRepositoryImpl struct {
	db *database.DB
}

func NewBalancePolicyRepository(db *database.DB) leave.BalancePolicyRepository {
	return &balancePolicyRepositoryImpl{db: db}
}

func (r *balancePolicyRepositoryImpl) Get(ctx context.Context, leaveType leave.LeaveType) (leave.BalancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_type, annual_allowance, updated_at
		FROM leave_balance_policies
		WHERE leave_type = $1
	`

	var p leave.BalancePolicy
	err := q.QueryRow(ctx, query, leaveType).Scan(&p.Type, &p.AnnualAllowance, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.BalancePolicy{}, leave.ErrPolicyNotFound
		}
		return leave.BalancePolicy{}, err
	}

	return p, nil
}

func (r *balancePolicyRepositoryImpl) List(ctx context.Context) ([]leave.BalancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_type, annual_allowance, updated_at
		FROM leave_balance_policies
		ORDER BY leave_type ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance policies: %w", err)
	}
	defer rows.Close()

	var policies []leave.BalancePolicy
	for rows.Next() {
		var p leave.BalancePolicy
		if err := rows.Scan(&p.Type, &p.AnnualAllowance, &p.UpdatedAt); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}

	return policies, rows.Err()
}

func (r *balancePolicyRepositoryImpl) Upsert(ctx context.Context, policy leave.BalancePolicy) (leave.BalancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balance_policies (leave_type, annual_allowance, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (leave_type)
		DO UPDATE SET annual_allowance = EXCLUDED.annual_allowance, updated_at = NOW()
		RETURNING leave_type, annual_allowance, updated_at
	`

	var p leave.BalancePolicy
	err := q.QueryRow(ctx, query, policy.Type, policy.AnnualAllowance).Scan(&p.Type, &p.AnnualAllowance, &p.UpdatedAt)
	if err != nil {
		return leave.BalancePolicy{}, fmt.Errorf("failed to upsert balance policy: %w", err)
	}

	return p, nil
}
