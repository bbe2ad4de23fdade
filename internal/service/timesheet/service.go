package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/calendar"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timeentry"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timesheet"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/clock"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
)

type TimesheetServiceImpl struct {
	tx database.Transactor
	timesheet.TimesheetRepository
	entryRepo    timeentry.TimeEntryRepository
	calendarRepo calendar.WorkCalendarRepository
	leaveService leave.LeaveService
	clock        clock.Clock
}

func NewTimesheetService(
	tx database.Transactor,
	timesheetRepo timesheet.TimesheetRepository,
	entryRepo timeentry.TimeEntryRepository,
	calendarRepo calendar.WorkCalendarRepository,
	leaveService leave.LeaveService,
	clk clock.Clock,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		tx:                  tx,
		TimesheetRepository: timesheetRepo,
		entryRepo:           entryRepo,
		calendarRepo:        calendarRepo,
		leaveService:        leaveService,
		clock:               clk,
	}
}

// WorkedHours implements timesheet.TimesheetService.
func (t *TimesheetServiceImpl) WorkedHours(ctx context.Context, ownerID string, weekStart time.Time) (float64, error) {
	cfg, err := t.calendarRepo.Get(ctx)
	if err != nil {
		return 0, err
	}

	start := cfg.WeekStart(weekStart)
	entries, err := t.entryRepo.ListRange(ctx, ownerID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return 0, fmt.Errorf("failed to list week entries: %w", err)
	}

	now := t.clock.Now()
	var total float64
	for _, e := range entries {
		if e.Kind != timeentry.KindWork {
			continue
		}
		total += e.Hours(now)
	}
	return total, nil
}

// LeaveCreditHours implements timesheet.TimesheetService. Every one of the
// seven days is checked against the leave ledger; the unpaid type credits
// nothing.
func (t *TimesheetServiceImpl) LeaveCreditHours(ctx context.Context, ownerID string, weekStart time.Time) (float64, error) {
	cfg, err := t.calendarRepo.Get(ctx)
	if err != nil {
		return 0, err
	}

	start := cfg.WeekStart(weekStart)
	var credit float64
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		info, err := t.leaveService.IsOnApprovedLeave(ctx, ownerID, day)
		if err != nil {
			return 0, err
		}
		if !info.OnLeave || info.Type == leave.TypeUnpaid {
			continue
		}
		if info.IsHalfDay {
			credit += timesheet.HalfDayCreditHours
		} else {
			credit += timesheet.FullDayCreditHours
		}
	}
	return credit, nil
}

// Submit implements timesheet.TimesheetService. The weekly total is a
// snapshot: it is computed once here and written to the record, never
// recomputed from live entries afterwards. Entries added or extended after
// submission are not reflected until the week is resubmitted.
func (t *TimesheetServiceImpl) Submit(ctx context.Context, ownerID string, weekStart time.Time) (timesheet.WeeklyTimesheet, error) {
	cfg, err := t.calendarRepo.Get(ctx)
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	start := cfg.WeekStart(weekStart)
	id := timesheet.DeterministicID(ownerID, start)

	var submitted timesheet.WeeklyTimesheet
	err = t.tx.RunInTx(ctx, func(ctx context.Context) error {
		// The approved check runs inside the transaction so a concurrent
		// approval cannot land between the read and the upsert.
		existing, err := t.TimesheetRepository.GetByID(ctx, id)
		if err != nil && !errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return err
		}
		if err == nil && existing.Status == timesheet.StatusApproved {
			return timesheet.ErrWeekApproved
		}

		entries, err := t.entryRepo.ListRange(ctx, ownerID, start, start.AddDate(0, 0, 7))
		if err != nil {
			return fmt.Errorf("failed to list week entries: %w", err)
		}

		now := t.clock.Now()
		var worked float64
		var workIDs []string
		var openTimer bool
		for _, e := range entries {
			if e.Kind != timeentry.KindWork {
				continue
			}
			if e.IsOpen() {
				openTimer = true
			}
			worked += e.Hours(now)
			workIDs = append(workIDs, e.ID)
		}

		credit, err := t.LeaveCreditHours(ctx, ownerID, start)
		if err != nil {
			return err
		}

		total := worked + credit
		if total < cfg.MinWeeklyHours {
			return timesheet.NewInsufficientHours(cfg.MinWeeklyHours, total)
		}

		submitted, err = t.TimesheetRepository.Upsert(ctx, timesheet.WeeklyTimesheet{
			ID:          id,
			OwnerID:     ownerID,
			WeekStart:   start,
			Status:      timesheet.StatusSubmitted,
			TotalHours:  total,
			SubmittedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert timesheet: %w", err)
		}

		if len(workIDs) > 0 {
			if err := t.entryRepo.MarkStatus(ctx, workIDs, timeentry.StatusSubmitted); err != nil {
				return fmt.Errorf("failed to mark entries submitted: %w", err)
			}
		}

		if openTimer {
			slog.WarnContext(ctx, "timesheet submitted with a running timer; its hours are counted up to submission time only",
				slog.String("timesheet_id", id),
				slog.String("owner_id", ownerID),
			)
		}

		slog.InfoContext(ctx, "timesheet submitted",
			slog.String("timesheet_id", id),
			slog.String("owner_id", ownerID),
			slog.String("week_start", start.Format("2006-01-02")),
			slog.Float64("total_hours", total),
		)
		return nil
	})
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	return submitted, nil
}

// Review implements timesheet.TimesheetService. Approval is terminal; a
// rejected timesheet can be resubmitted, so its entries revert to draft.
func (t *TimesheetServiceImpl) Review(ctx context.Context, reviewerID string, req timesheet.ReviewRequest) (timesheet.WeeklyTimesheet, error) {
	if err := req.Validate(); err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	sheet, err := t.TimesheetRepository.GetByID(ctx, req.TimesheetID)
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	if sheet.Status == timesheet.StatusApproved {
		return timesheet.WeeklyTimesheet{}, timesheet.ErrWeekApproved
	}
	if sheet.Status != timesheet.StatusSubmitted {
		return timesheet.WeeklyTimesheet{}, timesheet.ErrNotSubmitted
	}

	target := timesheet.StatusApproved
	entryStatus := timeentry.StatusApproved
	if timesheet.ReviewDecision(req.Decision) == timesheet.DecisionReject {
		target = timesheet.StatusRejected
		entryStatus = timeentry.StatusDraft
	}

	reviewedAt := t.clock.Now()
	err = t.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := t.TimesheetRepository.UpdateStatus(ctx, sheet.ID, target, reviewerID, reviewedAt); err != nil {
			return fmt.Errorf("failed to update timesheet status: %w", err)
		}

		entries, err := t.entryRepo.ListRange(ctx, sheet.OwnerID, sheet.WeekStart, sheet.WeekStart.AddDate(0, 0, 7))
		if err != nil {
			return fmt.Errorf("failed to list week entries: %w", err)
		}

		var ids []string
		for _, e := range entries {
			if e.Status == timeentry.StatusSubmitted {
				ids = append(ids, e.ID)
			}
		}
		if len(ids) > 0 {
			if err := t.entryRepo.MarkStatus(ctx, ids, entryStatus); err != nil {
				return fmt.Errorf("failed to mark entries: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	sheet.Status = target
	sheet.ReviewedBy = &reviewerID
	if target == timesheet.StatusApproved {
		sheet.ApprovedAt = &reviewedAt
	}
	return sheet, nil
}

// Get implements timesheet.TimesheetService.
func (t *TimesheetServiceImpl) Get(ctx context.Context, ownerID string, weekStart time.Time) (timesheet.WeeklyTimesheet, error) {
	cfg, err := t.calendarRepo.Get(ctx)
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	return t.TimesheetRepository.GetByOwnerWeek(ctx, ownerID, cfg.WeekStart(weekStart))
}

// WeeklySummary implements timesheet.TimesheetService. The independent reads
// fan out concurrently.
func (t *TimesheetServiceImpl) WeeklySummary(ctx context.Context, ownerID string, weekStart time.Time) (timesheet.WeeklySummary, error) {
	cfg, err := t.calendarRepo.Get(ctx)
	if err != nil {
		return timesheet.WeeklySummary{}, err
	}

	start := cfg.WeekStart(weekStart)
	summary := timesheet.WeeklySummary{
		WeekStart:      start,
		MinWeeklyHours: cfg.MinWeeklyHours,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		worked, err := t.WorkedHours(gctx, ownerID, start)
		if err != nil {
			return err
		}
		summary.WorkedHours = worked
		return nil
	})

	g.Go(func() error {
		credit, err := t.LeaveCreditHours(gctx, ownerID, start)
		if err != nil {
			return err
		}
		summary.LeaveCreditHours = credit
		return nil
	})

	g.Go(func() error {
		_, err := t.entryRepo.GetActive(gctx, ownerID)
		if err != nil {
			if errors.Is(err, timeentry.ErrNoActiveTimer) {
				return nil
			}
			return err
		}
		summary.HasActiveTimer = true
		return nil
	})

	g.Go(func() error {
		sheet, err := t.TimesheetRepository.GetByOwnerWeek(gctx, ownerID, start)
		if err != nil {
			if errors.Is(err, timesheet.ErrTimesheetNotFound) {
				return nil
			}
			return err
		}
		summary.Submission = &sheet
		return nil
	})

	if err := g.Wait(); err != nil {
		return timesheet.WeeklySummary{}, err
	}

	summary.TotalHours = summary.WorkedHours + summary.LeaveCreditHours
	return summary, nil
}
