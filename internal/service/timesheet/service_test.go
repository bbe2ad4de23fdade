package timesheet

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/calendar"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timeentry"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timesheet"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/clock"
)

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries []timeentry.TimeEntry
	nextID  int
}

func (f *fakeEntryRepo) Create(_ context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	entry.ID = fmt.Sprintf("entry-%d", f.nextID)
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeEntryRepo) GetByID(_ context.Context, id string) (timeentry.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
}

func (f *fakeEntryRepo) GetActive(_ context.Context, ownerID string) (timeentry.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.OwnerID == ownerID && e.EndTime == nil {
			return e, nil
		}
	}
	return timeentry.TimeEntry{}, timeentry.ErrNoActiveTimer
}

func (f *fakeEntryRepo) CloseActive(_ context.Context, ownerID string, at time.Time) ([]timeentry.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var closed []timeentry.TimeEntry
	for i, e := range f.entries {
		if e.OwnerID == ownerID && e.EndTime == nil && e.StartTime.Before(at) {
			end := at
			f.entries[i].EndTime = &end
			closed = append(closed, f.entries[i])
		}
	}
	return closed, nil
}

func (f *fakeEntryRepo) ListRange(_ context.Context, ownerID string, from, to time.Time) ([]timeentry.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if e.OwnerID == ownerID && !e.StartTime.Before(from) && e.StartTime.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) MarkStatus(_ context.Context, ids []string, status timeentry.LifecycleStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		for i := range f.entries {
			if f.entries[i].ID == id {
				f.entries[i].Status = status
			}
		}
	}
	return nil
}

func (f *fakeEntryRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return timeentry.ErrEntryNotFound
}

type fakeTimesheetRepo struct {
	mu     sync.Mutex
	sheets map[string]timesheet.WeeklyTimesheet
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{sheets: map[string]timesheet.WeeklyTimesheet{}}
}

func (f *fakeTimesheetRepo) Upsert(_ context.Context, sheet timesheet.WeeklyTimesheet) (timesheet.WeeklyTimesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.sheets[sheet.ID]; ok && existing.Status == timesheet.StatusApproved {
		return timesheet.WeeklyTimesheet{}, timesheet.ErrWeekApproved
	}
	f.sheets[sheet.ID] = sheet
	return sheet, nil
}

func (f *fakeTimesheetRepo) GetByID(_ context.Context, id string) (timesheet.WeeklyTimesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sheet, ok := f.sheets[id]
	if !ok {
		return timesheet.WeeklyTimesheet{}, timesheet.ErrTimesheetNotFound
	}
	return sheet, nil
}

func (f *fakeTimesheetRepo) GetByOwnerWeek(_ context.Context, ownerID string, weekStart time.Time) (timesheet.WeeklyTimesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sheet := range f.sheets {
		if sheet.OwnerID == ownerID && sheet.WeekStart.Equal(weekStart) {
			return sheet, nil
		}
	}
	return timesheet.WeeklyTimesheet{}, timesheet.ErrTimesheetNotFound
}

func (f *fakeTimesheetRepo) UpdateStatus(_ context.Context, id string, status timesheet.Status, reviewedBy string, reviewedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sheet, ok := f.sheets[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	sheet.Status = status
	sheet.ReviewedBy = &reviewedBy
	if status == timesheet.StatusApproved {
		sheet.ApprovedAt = &reviewedAt
	}
	f.sheets[id] = sheet
	return nil
}

type fakeCalendarRepo struct {
	cfg calendar.WorkCalendarConfig
}

func (f *fakeCalendarRepo) Get(_ context.Context) (calendar.WorkCalendarConfig, error) {
	return f.cfg, nil
}

func (f *fakeCalendarRepo) Upsert(_ context.Context, cfg calendar.WorkCalendarConfig) (calendar.WorkCalendarConfig, error) {
	f.cfg = cfg
	return cfg, nil
}

func (f *fakeCalendarRepo) Seed(context.Context, calendar.WorkCalendarConfig) error { return nil }

// stubLeaveService answers leave-day queries from a fixed map; the booking
// paths are never reached from these tests.
type stubLeaveService struct {
	days map[string]leave.DayInfo // keyed by YYYY-MM-DD
}

func (s *stubLeaveService) IsOnApprovedLeave(_ context.Context, _ string, date time.Time) (leave.DayInfo, error) {
	return s.days[date.Format("2006-01-02")], nil
}

func (s *stubLeaveService) Book(context.Context, string, leave.BookRequest) (leave.TimeOffRequest, error) {
	return leave.TimeOffRequest{}, nil
}

func (s *stubLeaveService) EditPending(context.Context, string, leave.EditRequest) (leave.TimeOffRequest, error) {
	return leave.TimeOffRequest{}, nil
}

func (s *stubLeaveService) Review(context.Context, string, leave.ReviewRequest) (leave.TimeOffRequest, error) {
	return leave.TimeOffRequest{}, nil
}

func (s *stubLeaveService) Balance(context.Context, string, leave.LeaveType, time.Time) (leave.Balance, error) {
	return leave.Balance{}, nil
}

func (s *stubLeaveService) Balances(context.Context, string, time.Time) ([]leave.Balance, error) {
	return nil, nil
}

func (s *stubLeaveService) ListRequests(context.Context, string, leave.RequestFilter) ([]leave.TimeOffRequest, error) {
	return nil, nil
}

func (s *stubLeaveService) ListPolicies(context.Context) ([]leave.BalancePolicy, error) {
	return nil, nil
}

func (s *stubLeaveService) UpsertPolicy(context.Context, leave.UpsertPolicyRequest) (leave.BalancePolicy, error) {
	return leave.BalancePolicy{}, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// hookTx runs a callback just before the transaction body, standing in for
// work another connection commits while this one is starting.
type hookTx struct {
	before func()
}

func (h hookTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if h.before != nil {
		h.before()
	}
	return fn(ctx)
}

// Monday of the test week.
var weekStart = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	svc     timesheet.TimesheetService
	entries *fakeEntryRepo
	sheets  *fakeTimesheetRepo
	leaves  *stubLeaveService
	clock   *clock.Fixed
}

func newFixture() *fixture {
	entries := &fakeEntryRepo{}
	sheets := newFakeTimesheetRepo()
	leaves := &stubLeaveService{days: map[string]leave.DayInfo{}}
	clk := &clock.Fixed{Instant: weekStart.AddDate(0, 0, 5)} // Saturday
	svc := NewTimesheetService(
		passthroughTx{},
		sheets,
		entries,
		&fakeCalendarRepo{cfg: calendar.Default()},
		leaves,
		clk,
	)
	return &fixture{svc: svc, entries: entries, sheets: sheets, leaves: leaves, clock: clk}
}

// addWork inserts a closed work entry of the given length on weekday offset d.
func (f *fixture) addWork(t *testing.T, d int, hours float64) timeentry.TimeEntry {
	t.Helper()
	start := weekStart.AddDate(0, 0, d).Add(9 * time.Hour)
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	entry, err := f.entries.Create(context.Background(), timeentry.TimeEntry{
		OwnerID:   "u1",
		ProjectID: "alpha",
		StartTime: start,
		EndTime:   &end,
		Kind:      timeentry.KindWork,
		Status:    timeentry.StatusDraft,
	})
	require.NoError(t, err)
	return entry
}

func TestWorkedHoursExcludesBreaks(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.addWork(t, 0, 8)
	f.addWork(t, 1, 7.5)

	breakStart := weekStart.Add(12 * time.Hour)
	breakEnd := breakStart.Add(time.Hour)
	_, err := f.entries.Create(ctx, timeentry.TimeEntry{
		OwnerID: "u1", ProjectID: timeentry.ProjectBreak,
		StartTime: breakStart, EndTime: &breakEnd,
		Kind: timeentry.KindBreak,
	})
	require.NoError(t, err)

	worked, err := f.svc.WorkedHours(ctx, "u1", weekStart)
	require.NoError(t, err)
	assert.InDelta(t, 15.5, worked, 1e-9)
}

func TestWorkedHoursCountsOpenEntryAgainstNow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	start := f.clock.Now().Add(-3 * time.Hour)
	_, err := f.entries.Create(ctx, timeentry.TimeEntry{
		OwnerID: "u1", ProjectID: "alpha", StartTime: start, Kind: timeentry.KindWork,
	})
	require.NoError(t, err)

	worked, err := f.svc.WorkedHours(ctx, "u1", weekStart)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, worked, 1e-9)

	f.clock.Advance(time.Hour)
	worked, err = f.svc.WorkedHours(ctx, "u1", weekStart)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, worked, 1e-9)
}

func TestLeaveCreditHours(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.leaves.days["2026-03-03"] = leave.DayInfo{OnLeave: true, Type: leave.TypeCasual}
	f.leaves.days["2026-03-04"] = leave.DayInfo{OnLeave: true, IsHalfDay: true, Type: leave.TypeSick}
	f.leaves.days["2026-03-05"] = leave.DayInfo{OnLeave: true, Type: leave.TypeUnpaid}

	credit, err := f.svc.LeaveCreditHours(ctx, "u1", weekStart)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, credit, 1e-9) // 8 full + 4 half, unpaid credits nothing
}

func TestSubmitSufficientWeek(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	var entryIDs []string
	for d := 0; d < 5; d++ {
		entryIDs = append(entryIDs, f.addWork(t, d, 8).ID)
	}

	sheet, err := f.svc.Submit(ctx, "u1", weekStart.AddDate(0, 0, 3)) // any day of the week
	require.NoError(t, err)

	assert.Equal(t, timesheet.DeterministicID("u1", weekStart), sheet.ID)
	assert.Equal(t, timesheet.StatusSubmitted, sheet.Status)
	assert.True(t, sheet.WeekStart.Equal(weekStart))
	assert.InDelta(t, 40.0, sheet.TotalHours, 1e-9)
	require.NotNil(t, sheet.SubmittedAt)

	for _, id := range entryIDs {
		e, err := f.entries.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, timeentry.StatusSubmitted, e.Status)
	}
}

func TestSubmitInsufficientHours(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for d := 0; d < 4; d++ {
		f.addWork(t, d, 8)
	}

	_, err := f.svc.Submit(ctx, "u1", weekStart)
	var insufficient *timesheet.InsufficientHoursError
	require.ErrorAs(t, err, &insufficient)
	assert.InDelta(t, 40.0, insufficient.Required, 1e-9)
	assert.InDelta(t, 32.0, insufficient.Total, 1e-9)
	assert.InDelta(t, 8.0, insufficient.Shortfall, 1e-9)

	// Nothing written, nothing flipped.
	_, err = f.sheets.GetByID(ctx, timesheet.DeterministicID("u1", weekStart))
	assert.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}

func TestSubmitCountsLeaveCredit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for d := 0; d < 4; d++ {
		f.addWork(t, d, 8)
	}
	f.leaves.days["2026-03-06"] = leave.DayInfo{OnLeave: true, Type: leave.TypeCasual}

	sheet, err := f.svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, sheet.TotalHours, 1e-9)
}

func TestResubmissionOverwritesSameRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for d := 0; d < 5; d++ {
		f.addWork(t, d, 8)
	}

	first, err := f.svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)

	f.addWork(t, 5, 4)
	second, err := f.svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 44.0, second.TotalHours, 1e-9)
	assert.Len(t, f.sheets.sheets, 1)
}

func TestSubmitApprovedWeekLocked(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for d := 0; d < 5; d++ {
		f.addWork(t, d, 8)
	}

	sheet, err := f.svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, "admin", timesheet.ReviewRequest{TimesheetID: sheet.ID, Decision: "approve"})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "u1", weekStart)
	assert.ErrorIs(t, err, timesheet.ErrWeekApproved)
}

func TestSubmitRacingApprovalLoses(t *testing.T) {
	ctx := context.Background()

	entries := &fakeEntryRepo{}
	sheets := newFakeTimesheetRepo()
	leaves := &stubLeaveService{days: map[string]leave.DayInfo{}}
	clk := &clock.Fixed{Instant: weekStart.AddDate(0, 0, 5)}

	var beforeTx func()
	svc := NewTimesheetService(
		hookTx{before: func() {
			if beforeTx != nil {
				beforeTx()
			}
		}},
		sheets,
		entries,
		&fakeCalendarRepo{cfg: calendar.Default()},
		leaves,
		clk,
	)
	f := &fixture{svc: svc, entries: entries, sheets: sheets, leaves: leaves, clock: clk}

	for d := 0; d < 5; d++ {
		f.addWork(t, d, 8)
	}

	sheet, err := svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)

	// An admin approves the sheet after the resubmission has started but
	// before its transaction does any work.
	beforeTx = func() {
		require.NoError(t, sheets.UpdateStatus(ctx, sheet.ID, timesheet.StatusApproved, "admin-1", clk.Now()))
	}

	_, err = svc.Submit(ctx, "u1", weekStart)
	assert.ErrorIs(t, err, timesheet.ErrWeekApproved)

	got, err := sheets.GetByID(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, got.Status)
}

func TestReviewApproveMarksEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	var entryIDs []string
	for d := 0; d < 5; d++ {
		entryIDs = append(entryIDs, f.addWork(t, d, 8).ID)
	}

	sheet, err := f.svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)

	approved, err := f.svc.Review(ctx, "admin", timesheet.ReviewRequest{TimesheetID: sheet.ID, Decision: "approve"})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	for _, id := range entryIDs {
		e, err := f.entries.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, timeentry.StatusApproved, e.Status)
	}

	// Approval is terminal.
	_, err = f.svc.Review(ctx, "admin", timesheet.ReviewRequest{TimesheetID: sheet.ID, Decision: "reject"})
	assert.ErrorIs(t, err, timesheet.ErrWeekApproved)
}

func TestReviewRejectRevertsEntriesToDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	var entryIDs []string
	for d := 0; d < 5; d++ {
		entryIDs = append(entryIDs, f.addWork(t, d, 8).ID)
	}

	sheet, err := f.svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)

	rejected, err := f.svc.Review(ctx, "admin", timesheet.ReviewRequest{TimesheetID: sheet.ID, Decision: "reject"})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusRejected, rejected.Status)

	for _, id := range entryIDs {
		e, err := f.entries.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, timeentry.StatusDraft, e.Status)
	}

	// A rejected week can be resubmitted.
	resubmitted, err := f.svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)
	assert.Equal(t, sheet.ID, resubmitted.ID)
	assert.Equal(t, timesheet.StatusSubmitted, resubmitted.Status)
}

func TestReviewRequiresSubmission(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.Review(ctx, "admin", timesheet.ReviewRequest{TimesheetID: "missing", Decision: "approve"})
	assert.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}

func TestApprovedTotalIsSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for d := 0; d < 5; d++ {
		f.addWork(t, d, 8)
	}

	sheet, err := f.svc.Submit(ctx, "u1", weekStart)
	require.NoError(t, err)
	_, err = f.svc.Review(ctx, "admin", timesheet.ReviewRequest{TimesheetID: sheet.ID, Decision: "approve"})
	require.NoError(t, err)

	// A later administrative insert does not disturb the stored total.
	f.addWork(t, 5, 6)

	stored, err := f.svc.Get(ctx, "u1", weekStart)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, stored.TotalHours, 1e-9)
	assert.Equal(t, timesheet.StatusApproved, stored.Status)
}

func TestWeeklySummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.addWork(t, 0, 8)
	f.leaves.days["2026-03-03"] = leave.DayInfo{OnLeave: true, Type: leave.TypeSick}

	_, err := f.entries.Create(ctx, timeentry.TimeEntry{
		OwnerID:   "u1",
		ProjectID: "alpha",
		StartTime: f.clock.Now().Add(-time.Hour),
		Kind:      timeentry.KindWork,
	})
	require.NoError(t, err)

	summary, err := f.svc.WeeklySummary(ctx, "u1", weekStart)
	require.NoError(t, err)
	assert.True(t, summary.WeekStart.Equal(weekStart))
	assert.InDelta(t, 9.0, summary.WorkedHours, 1e-9)
	assert.InDelta(t, 8.0, summary.LeaveCreditHours, 1e-9)
	assert.InDelta(t, 17.0, summary.TotalHours, 1e-9)
	assert.InDelta(t, 40.0, summary.MinWeeklyHours, 1e-9)
	assert.True(t, summary.HasActiveTimer)
	assert.Nil(t, summary.Submission)
}
