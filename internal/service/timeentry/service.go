package timeentry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timeentry"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/clock"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
)

type TimeEntryServiceImpl struct {
	tx database.Transactor
	timeentry.TimeEntryRepository
	clock clock.Clock
}

func NewTimeEntryService(tx database.Transactor, entryRepo timeentry.TimeEntryRepository, clk clock.Clock) timeentry.TimeEntryService {
	return &TimeEntryServiceImpl{
		tx:                  tx,
		TimeEntryRepository: entryRepo,
		clock:               clk,
	}
}

// StartTimer implements timeentry.TimeEntryService. Any running timer for the
// owner is closed at the same instant the new one starts, inside one
// transaction, so the single-active-entry invariant holds even when two
// devices race.
func (s *TimeEntryServiceImpl) StartTimer(ctx context.Context, ownerID string, req timeentry.StartTimerRequest) (timeentry.TimeEntry, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntry{}, err
	}

	kind := timeentry.KindWork
	if req.ProjectID == timeentry.ProjectBreak {
		kind = timeentry.KindBreak
	}

	var created timeentry.TimeEntry
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// The instant is captured inside the transaction so the close and
		// the insert always agree on ordering, even when two starts race.
		now := s.clock.Now()

		closed, err := s.TimeEntryRepository.CloseActive(ctx, ownerID, now)
		if err != nil {
			return fmt.Errorf("failed to close previous active entry: %w", err)
		}
		for _, prev := range closed {
			slog.Info("auto-closed running timer on new start",
				"owner_id", ownerID,
				"entry_id", prev.ID,
				"project_id", prev.ProjectID,
			)
		}

		created, err = s.TimeEntryRepository.Create(ctx, timeentry.TimeEntry{
			OwnerID:   ownerID,
			ProjectID: req.ProjectID,
			Label:     req.Label,
			StartTime: now,
			Kind:      kind,
			Status:    timeentry.StatusDraft,
		})
		if err != nil {
			return fmt.Errorf("failed to create time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return timeentry.TimeEntry{}, err
	}

	return created, nil
}

// StopTimer implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) StopTimer(ctx context.Context, ownerID string) (timeentry.TimeEntry, error) {
	now := s.clock.Now()

	closed, err := s.TimeEntryRepository.CloseActive(ctx, ownerID, now)
	if err != nil {
		return timeentry.TimeEntry{}, fmt.Errorf("failed to stop timer: %w", err)
	}
	if len(closed) == 0 {
		return timeentry.TimeEntry{}, timeentry.ErrNoActiveTimer
	}

	// The conditional write can only ever match one row when the invariant
	// holds; the latest is returned regardless.
	return closed[len(closed)-1], nil
}

// RecordManualEntry implements timeentry.TimeEntryService. Administrative
// inserts bypass the submission workflow and land already approved.
func (s *TimeEntryServiceImpl) RecordManualEntry(ctx context.Context, req timeentry.ManualEntryRequest) (timeentry.TimeEntry, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntry{}, err
	}

	start, end := req.Times()

	kind := timeentry.KindWork
	if req.ProjectID == timeentry.ProjectBreak {
		kind = timeentry.KindBreak
	}

	created, err := s.TimeEntryRepository.Create(ctx, timeentry.TimeEntry{
		OwnerID:   req.OwnerID,
		ProjectID: req.ProjectID,
		Label:     req.Label,
		StartTime: start,
		EndTime:   &end,
		Kind:      kind,
		Status:    timeentry.StatusApproved,
	})
	if err != nil {
		return timeentry.TimeEntry{}, fmt.Errorf("failed to record manual entry: %w", err)
	}

	return created, nil
}

// DeleteEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	return s.TimeEntryRepository.Delete(ctx, id)
}

// ActiveEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ActiveEntry(ctx context.Context, ownerID string) (timeentry.TimeEntry, error) {
	return s.TimeEntryRepository.GetActive(ctx, ownerID)
}

// EntriesForDay implements timeentry.TimeEntryService: half-open [day, day+24h).
func (s *TimeEntryServiceImpl) EntriesForDay(ctx context.Context, ownerID string, day time.Time) ([]timeentry.TimeEntry, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return s.TimeEntryRepository.ListRange(ctx, ownerID, from, from.AddDate(0, 0, 1))
}

// EntriesForWeek implements timeentry.TimeEntryService: half-open [weekStart, weekStart+7d).
func (s *TimeEntryServiceImpl) EntriesForWeek(ctx context.Context, ownerID string, weekStart time.Time) ([]timeentry.TimeEntry, error) {
	from := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	return s.TimeEntryRepository.ListRange(ctx, ownerID, from, from.AddDate(0, 0, 7))
}
