package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeOffRepositoryImpl struct {
	db *database.DB
}

func NewTimeOffRepository(db *database.DB) leave.TimeOffRepository {
	return &timeOffRepositoryImpl{db: db}
}

const timeOffColumns = `id, owner_id, leave_type, start_date, end_date, is_half_day, reason, status, reviewed_by, reviewed_at, created_at, updated_at`

func scanTimeOff(row pgx.Row) (leave.TimeOffRequest, error) {
	var r leave.TimeOffRequest
	err := row.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Type,
		&r.StartDate,
		&r.EndDate,
		&r.IsHalfDay,
		&r.Reason,
		&r.Status,
		&r.ReviewedBy,
		&r.ReviewedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r *timeOffRepositoryImpl) Create(ctx context.Context, request leave.TimeOffRequest) (leave.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_off_requests (
			id, owner_id, leave_type,
			start_date, end_date, is_half_day, reason,
			status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6,
			$7, NOW(), NOW()
		) RETURNING ` + timeOffColumns

	created, err := scanTimeOff(q.QueryRow(ctx, query,
		request.OwnerID, request.Type,
		request.StartDate, request.EndDate, request.IsHalfDay, request.Reason,
		request.Status,
	))
	if err != nil {
		return leave.TimeOffRequest{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	return created, nil
}

func (r *timeOffRepositoryImpl) GetByID(ctx context.Context, id string) (leave.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeOffColumns + ` FROM time_off_requests WHERE id = $1`

	request, err := scanTimeOff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.TimeOffRequest{}, leave.ErrRequestNotFound
		}
		return leave.TimeOffRequest{}, err
	}

	return request, nil
}

func (r *timeOffRepositoryImpl) Update(ctx context.Context, request leave.TimeOffRequest) (leave.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_off_requests
		SET leave_type = $2, start_date = $3, end_date = $4,
		    is_half_day = $5, reason = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + timeOffColumns

	updated, err := scanTimeOff(q.QueryRow(ctx, query,
		request.ID, request.Type, request.StartDate, request.EndDate,
		request.IsHalfDay, request.Reason,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.TimeOffRequest{}, leave.ErrRequestNotFound
		}
		return leave.TimeOffRequest{}, fmt.Errorf("failed to update time-off request: %w", err)
	}

	return updated, nil
}

func (r *timeOffRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, reviewedBy string, reviewedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_off_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, status, reviewedBy, reviewedAt).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update status for time-off request %s: %w", id, err)
	}
	return nil
}

func (r *timeOffRepositoryImpl) ListByOwner(ctx context.Context, ownerID string, filter leave.RequestFilter) ([]leave.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"owner_id = $1"}
	args := []interface{}{ownerID}
	argIdx := 2

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Type != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("leave_type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("end_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("start_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := `
		SELECT ` + timeOffColumns + `
		FROM time_off_requests
		WHERE ` + strings.Join(whereClauses, " AND ") + `
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time-off requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.TimeOffRequest
	for rows.Next() {
		req, err := scanTimeOff(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *timeOffRepositoryImpl) ListApprovedOverlapping(ctx context.Context, ownerID string, from, to time.Time) ([]leave.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeOffColumns + `
		FROM time_off_requests
		WHERE owner_id = $1
		  AND status = 'approved'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leave: %w", err)
	}
	defer rows.Close()

	var requests []leave.TimeOffRequest
	for rows.Next() {
		req, err := scanTimeOff(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *timeOffRepositoryImpl) SumApprovedDays(ctx context.Context, ownerID string, leaveType leave.LeaveType, year int) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(
			CASE WHEN is_half_day THEN 0.5
			     ELSE (end_date::date - start_date::date) + 1
			END
		), 0)
		FROM time_off_requests
		WHERE owner_id = $1
		  AND leave_type = $2
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) = $3
	`

	var total float64
	if err := q.QueryRow(ctx, query, ownerID, leaveType, year).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum approved leave days: %w", err)
	}

	return total, nil
}
