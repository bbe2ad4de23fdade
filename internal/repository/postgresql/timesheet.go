package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timesheet"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

const timesheetColumns = `id, owner_id, week_start, status, total_hours, submitted_at, approved_at, reviewed_by, created_at, updated_at`

func scanTimesheet(row pgx.Row) (timesheet.WeeklyTimesheet, error) {
	var t timesheet.WeeklyTimesheet
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.WeekStart,
		&t.Status,
		&t.TotalHours,
		&t.SubmittedAt,
		&t.ApprovedAt,
		&t.ReviewedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Upsert writes the submission record keyed by its deterministic id, so a
// retried or repeated submission overwrites instead of duplicating. The
// conflict update refuses to touch an approved row; approval is terminal
// even against a submission racing on another connection.
func (r *timesheetRepositoryImpl) Upsert(ctx context.Context, sheet timesheet.WeeklyTimesheet) (timesheet.WeeklyTimesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO weekly_timesheets (
			id, owner_id, week_start, status, total_hours,
			submitted_at, approved_at, reviewed_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			status = EXCLUDED.status,
			total_hours = EXCLUDED.total_hours,
			submitted_at = EXCLUDED.submitted_at,
			approved_at = EXCLUDED.approved_at,
			reviewed_by = EXCLUDED.reviewed_by,
			updated_at = NOW()
		WHERE weekly_timesheets.status <> 'approved'
		RETURNING ` + timesheetColumns

	saved, err := scanTimesheet(q.QueryRow(ctx, query,
		sheet.ID, sheet.OwnerID, sheet.WeekStart, sheet.Status, sheet.TotalHours,
		sheet.SubmittedAt, sheet.ApprovedAt, sheet.ReviewedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.WeeklyTimesheet{}, timesheet.ErrWeekApproved
		}
		return timesheet.WeeklyTimesheet{}, fmt.Errorf("failed to upsert timesheet: %w", err)
	}

	return saved, nil
}

func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.WeeklyTimesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM weekly_timesheets WHERE id = $1`

	sheet, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.WeeklyTimesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.WeeklyTimesheet{}, err
	}

	return sheet, nil
}

func (r *timesheetRepositoryImpl) GetByOwnerWeek(ctx context.Context, ownerID string, weekStart time.Time) (timesheet.WeeklyTimesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM weekly_timesheets WHERE owner_id = $1 AND week_start = $2`

	sheet, err := scanTimesheet(q.QueryRow(ctx, query, ownerID, weekStart))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.WeeklyTimesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.WeeklyTimesheet{}, err
	}

	return sheet, nil
}

func (r *timesheetRepositoryImpl) UpdateStatus(ctx context.Context, id string, status timesheet.Status, reviewedBy string, reviewedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	var approvedAt *time.Time
	if status == timesheet.StatusApproved {
		approvedAt = &reviewedAt
	}

	query := `
		UPDATE weekly_timesheets
		SET status = $2, reviewed_by = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, status, reviewedBy, approvedAt).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to update timesheet %s status: %w", id, err)
	}
	return nil
}
