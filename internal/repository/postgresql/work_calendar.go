package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/calendar"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workCalendarRepositoryImpl struct {
	db *database.DB
}

func NewWorkCalendarRepository(db *database.DB) calendar.WorkCalendarRepository {
	return &workCalendarRepositoryImpl{db: db}
}

// The calendar is a single row; the fixed key keeps the upsert idempotent.
const workCalendarKey = "default"

func (r *workCalendarRepositoryImpl) Get(ctx context.Context) (calendar.WorkCalendarConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_day, days_per_week, min_weekly_hours, min_daily_hours, created_at, updated_at
		FROM work_calendar
		WHERE id = $1
	`

	var cfg calendar.WorkCalendarConfig
	var startDay int
	err := q.QueryRow(ctx, query, workCalendarKey).Scan(
		&cfg.ID,
		&startDay,
		&cfg.DaysPerWeek,
		&cfg.MinWeeklyHours,
		&cfg.MinDailyHours,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No admin edit yet; every caller works off the default.
			return calendar.Default(), nil
		}
		return calendar.WorkCalendarConfig{}, err
	}

	cfg.StartDay = weekdayFromInt(startDay)
	return cfg, nil
}

func (r *workCalendarRepositoryImpl) Upsert(ctx context.Context, cfg calendar.WorkCalendarConfig) (calendar.WorkCalendarConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_calendar (id, start_day, days_per_week, min_weekly_hours, min_daily_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			start_day = EXCLUDED.start_day,
			days_per_week = EXCLUDED.days_per_week,
			min_weekly_hours = EXCLUDED.min_weekly_hours,
			min_daily_hours = EXCLUDED.min_daily_hours,
			updated_at = NOW()
		RETURNING id, start_day, days_per_week, min_weekly_hours, min_daily_hours, created_at, updated_at
	`

	var saved calendar.WorkCalendarConfig
	var startDay int
	err := q.QueryRow(ctx, query,
		workCalendarKey, int(cfg.StartDay), cfg.DaysPerWeek, cfg.MinWeeklyHours, cfg.MinDailyHours,
	).Scan(
		&saved.ID,
		&startDay,
		&saved.DaysPerWeek,
		&saved.MinWeeklyHours,
		&saved.MinDailyHours,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return calendar.WorkCalendarConfig{}, fmt.Errorf("failed to upsert work calendar: %w", err)
	}

	saved.StartDay = weekdayFromInt(startDay)
	return saved, nil
}

func (r *workCalendarRepositoryImpl) Seed(ctx context.Context, cfg calendar.WorkCalendarConfig) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_calendar (id, start_day, days_per_week, min_weekly_hours, min_daily_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING
	`

	_, err := q.Exec(ctx, query,
		workCalendarKey, int(cfg.StartDay), cfg.DaysPerWeek, cfg.MinWeeklyHours, cfg.MinDailyHours,
	)
	if err != nil {
		return fmt.Errorf("failed to seed work calendar: %w", err)
	}
	return nil
}

func weekdayFromInt(d int) time.Weekday {
	return time.Weekday(((d % 7) + 7) % 7)
}
