package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timeentry"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

const timeEntryColumns = `id, owner_id, project_id, label, start_time, end_time, kind, status, created_at, updated_at`

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.ProjectID,
		&e.Label,
		&e.StartTime,
		&e.EndTime,
		&e.Kind,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *timeEntryRepositoryImpl) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			id, owner_id, project_id, label,
			start_time, end_time, kind, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7,
			NOW(), NOW()
		) RETURNING ` + timeEntryColumns

	created, err := scanTimeEntry(q.QueryRow(ctx, query,
		entry.OwnerID, entry.ProjectID, entry.Label,
		entry.StartTime, entry.EndTime, entry.Kind, entry.Status,
	))
	if err != nil {
		// Two truly concurrent starts can each pass the conditional close
		// under READ COMMITTED; the partial unique index catches the loser.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "one_open_timer_per_owner" {
			return timeentry.TimeEntry{}, timeentry.ErrTimerConflict
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return created, nil
}

func (r *timeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = $1`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		return timeentry.TimeEntry{}, err
	}

	return entry, nil
}

func (r *timeEntryRepositoryImpl) GetActive(ctx context.Context, ownerID string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE owner_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrNoActiveTimer
		}
		return timeentry.TimeEntry{}, err
	}

	return entry, nil
}

// CloseActive is the conditional write backing the single-active-timer
// invariant: it closes every open entry for the owner in one statement, so
// two racing devices cannot both leave a timer open.
func (r *timeEntryRepositoryImpl) CloseActive(ctx context.Context, ownerID string, at time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET end_time = $2, updated_at = NOW()
		WHERE owner_id = $1 AND end_time IS NULL AND start_time < $2
		RETURNING ` + timeEntryColumns

	rows, err := q.Query(ctx, query, ownerID, at)
	if err != nil {
		return nil, fmt.Errorf("failed to close active entries: %w", err)
	}
	defer rows.Close()

	var closed []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		closed = append(closed, e)
	}

	return closed, rows.Err()
}

func (r *timeEntryRepositoryImpl) ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE owner_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *timeEntryRepositoryImpl) MarkStatus(ctx context.Context, ids []string, status timeentry.LifecycleStatus) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	placeholders := make([]string, len(ids))
	args := []interface{}{string(status)}
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := "UPDATE time_entries SET status = $1, updated_at = NOW() WHERE id IN (" + strings.Join(placeholders, ", ") + ")"

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark entry status: %w", err)
	}
	if commandTag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("marked %d of %d entries", commandTag.RowsAffected(), len(ids))
	}
	return nil
}

func (r *timeEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return timeentry.ErrEntryNotFound
	}
	return nil
}
