package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
)

type migration struct {
	index       int
	description string
	query       string
}

var schema = []migration{
	{
		index:       1,
		description: "Create table: work_calendar.",
		query: `
		CREATE TABLE IF NOT EXISTS work_calendar (
			id text primary key,
			start_day int not null,
			days_per_week int not null,
			min_weekly_hours double precision not null,
			min_daily_hours double precision not null,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
	},
	{
		index:       2,
		description: "Create table: time_entries.",
		query: `
		CREATE TABLE IF NOT EXISTS time_entries (
			id uuid primary key,
			owner_id text not null,
			project_id text not null,
			label text,
			start_time timestamptz not null,
			end_time timestamptz,
			kind text not null,
			status text not null,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
	},
	{
		index:       3,
		description: "At most one open timer per owner, enforced at the storage level.",
		query: `
		CREATE UNIQUE INDEX IF NOT EXISTS one_open_timer_per_owner
		ON time_entries (owner_id) WHERE end_time IS NULL;`,
	},
	{
		index:       4,
		description: "Range-scan index for day and week entry listings.",
		query: `
		CREATE INDEX IF NOT EXISTS time_entries_owner_start
		ON time_entries (owner_id, start_time);`,
	},
	{
		index:       5,
		description: "Create table: time_off_requests.",
		query: `
		CREATE TABLE IF NOT EXISTS time_off_requests (
			id uuid primary key,
			owner_id text not null,
			leave_type text not null,
			start_date date not null,
			end_date date not null,
			is_half_day boolean not null default false,
			reason text,
			status text not null,
			reviewed_by text,
			reviewed_at timestamptz,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
	},
	{
		index:       6,
		description: "Owner lookup index for leave requests.",
		query: `
		CREATE INDEX IF NOT EXISTS time_off_requests_owner
		ON time_off_requests (owner_id, start_date);`,
	},
	{
		index:       7,
		description: "Create table: leave_balance_policies.",
		query: `
		CREATE TABLE IF NOT EXISTS leave_balance_policies (
			leave_type text primary key,
			annual_allowance double precision not null,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
	},
	{
		index:       8,
		description: "Create table: weekly_timesheets.",
		query: `
		CREATE TABLE IF NOT EXISTS weekly_timesheets (
			id uuid primary key,
			owner_id text not null,
			week_start timestamptz not null,
			status text not null,
			total_hours double precision not null,
			submitted_at timestamptz,
			approved_at timestamptz,
			reviewed_by text,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now(),
			unique (owner_id, week_start)
		);`,
	},
	{
		index:       9,
		description: "Create table: salary_configs.",
		query: `
		CREATE TABLE IF NOT EXISTS salary_configs (
			owner_id text primary key,
			base_salary numeric not null,
			currency text not null,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
	},
}

// Migrate applies the schema in order on boot. Every statement is
// idempotent, so a restart replays the whole list safely.
func Migrate(ctx context.Context, db *database.DB) error {
	for _, m := range schema {
		if _, err := db.Exec(ctx, m.query); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.index, m.description, err)
		}
	}
	return nil
}
