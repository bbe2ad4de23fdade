package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/calendar"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/payroll"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timeentry"
)

type fakeSalaryRepo struct {
	configs map[string]payroll.SalaryConfig
}

func (f *fakeSalaryRepo) Get(_ context.Context, ownerID string) (payroll.SalaryConfig, error) {
	cfg, ok := f.configs[ownerID]
	if !ok {
		return payroll.SalaryConfig{}, payroll.ErrSalaryNotConfigured
	}
	return cfg, nil
}

func (f *fakeSalaryRepo) Upsert(_ context.Context, cfg payroll.SalaryConfig) (payroll.SalaryConfig, error) {
	if f.configs == nil {
		f.configs = map[string]payroll.SalaryConfig{}
	}
	f.configs[cfg.OwnerID] = cfg
	return cfg, nil
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

// stubEntryRepo answers ListRange from sets of worked and break-only dates;
// everything else is unused by the payroll paths.
type stubEntryRepo struct {
	workedDates map[string]bool // YYYY-MM-DD
	breakDates  map[string]bool
}

func (s *stubEntryRepo) ListRange(_ context.Context, ownerID string, from, _ time.Time) ([]timeentry.TimeEntry, error) {
	day := from.Format("2006-01-02")
	if s.workedDates[day] {
		end := from.Add(17 * time.Hour)
		return []timeentry.TimeEntry{{
			OwnerID:   ownerID,
			ProjectID: "alpha",
			StartTime: from.Add(9 * time.Hour),
			EndTime:   &end,
			Kind:      timeentry.KindWork,
		}}, nil
	}
	if s.breakDates[day] {
		end := from.Add(13 * time.Hour)
		return []timeentry.TimeEntry{{
			OwnerID:   ownerID,
			ProjectID: timeentry.ProjectBreak,
			StartTime: from.Add(12 * time.Hour),
			EndTime:   &end,
			Kind:      timeentry.KindBreak,
		}}, nil
	}
	return nil, nil
}

func (s *stubEntryRepo) Create(context.Context, timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	return timeentry.TimeEntry{}, nil
}

func (s *stubEntryRepo) GetByID(context.Context, string) (timeentry.TimeEntry, error) {
	return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
}

func (s *stubEntryRepo) GetActive(context.Context, string) (timeentry.TimeEntry, error) {
	return timeentry.TimeEntry{}, timeentry.ErrNoActiveTimer
}

func (s *stubEntryRepo) CloseActive(context.Context, string, time.Time) ([]timeentry.TimeEntry, error) {
	return nil, nil
}

func (s *stubEntryRepo) MarkStatus(context.Context, []string, timeentry.LifecycleStatus) error {
	return nil
}

func (s *stubEntryRepo) Delete(context.Context, string) error { return nil }

type stubLeaveService struct {
	days map[string]leave.DayInfo
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

type fixture struct {
	svc     payroll.PayrollService
	entries *stubEntryRepo
	leaves  *stubLeaveService
}

func newFixture(baseSalary string) *fixture {
	entries := &stubEntryRepo{workedDates: map[string]bool{}, breakDates: map[string]bool{}}
	leaves := &stubLeaveService{days: map[string]leave.DayInfo{}}
	salaries := &fakeSalaryRepo{configs: map[string]payroll.SalaryConfig{
		"u1": {OwnerID: "u1", BaseSalary: decimal.RequireFromString(baseSalary), Currency: "USD"},
	}}
	svc := NewPayrollService(salaries, entries, &fakeCalendarRepo{cfg: calendar.Default()}, leaves)
	return &fixture{svc: svc, entries: entries, leaves: leaves}
}

// workAllWorkdays marks every Monday-Friday date in the period as worked.
func (f *fixture) workAllWorkdays(start, end time.Time) {
	cfg := calendar.Default()
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if cfg.IsWorkDay(d) {
			f.entries.workedDates[d.Format("2006-01-02")] = true
		}
	}
}

var (
	periodStart = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
)

func marchRequest() payroll.CalculateRequest {
	return payroll.CalculateRequest{
		OwnerID:   "u1",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	}
}

func TestCalculateFullAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")
	f.workAllWorkdays(periodStart, periodEnd)

	stmt, err := f.svc.Calculate(ctx, marchRequest())
	require.NoError(t, err)

	assert.Equal(t, 31, stmt.DaysInPeriod)
	assert.Equal(t, 22, stmt.WorkDays) // March 2026: 22 weekdays
	assert.True(t, stmt.LopDays.IsZero())
	assert.Zero(t, stmt.MissedDays)
	assert.Equal(t, "100.00", stmt.DailyRate.StringFixed(2))
	assert.Equal(t, "0.00", stmt.Deduction.StringFixed(2))
	assert.Equal(t, "3100.00", stmt.NetSalary.StringFixed(2))
}

func TestCalculateUnpaidLeaveAndMissedDays(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")
	f.workAllWorkdays(periodStart, periodEnd)

	// Two unpaid leave days and one day with no leave and no logged time.
	f.leaves.days["2026-03-09"] = leave.DayInfo{OnLeave: true, Type: leave.TypeUnpaid}
	f.leaves.days["2026-03-10"] = leave.DayInfo{OnLeave: true, Type: leave.TypeUnpaid}
	delete(f.entries.workedDates, "2026-03-13")

	stmt, err := f.svc.Calculate(ctx, marchRequest())
	require.NoError(t, err)

	assert.Equal(t, "2", stmt.LopDays.String())
	assert.Equal(t, 1, stmt.MissedDays)
	assert.Equal(t, "300.00", stmt.Deduction.StringFixed(2))
	assert.Equal(t, "2800.00", stmt.NetSalary.StringFixed(2))
}

func TestCalculateBreakOnlyDayNotMissed(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")
	f.workAllWorkdays(periodStart, periodEnd)

	// A day carrying only a break entry still counts as attended; any entry
	// starting on the day excuses it.
	delete(f.entries.workedDates, "2026-03-09")
	f.entries.breakDates["2026-03-09"] = true

	stmt, err := f.svc.Calculate(ctx, marchRequest())
	require.NoError(t, err)

	assert.Zero(t, stmt.MissedDays)
	assert.Equal(t, "3100.00", stmt.NetSalary.StringFixed(2))
}

func TestCalculateThirtyDayMonth(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3000")
	aprilStart := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	aprilEnd := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)
	f.workAllWorkdays(aprilStart, aprilEnd)

	f.leaves.days["2026-04-06"] = leave.DayInfo{OnLeave: true, Type: leave.TypeUnpaid}
	delete(f.entries.workedDates, "2026-04-07")
	delete(f.entries.workedDates, "2026-04-08")

	stmt, err := f.svc.Calculate(ctx, payroll.CalculateRequest{
		OwnerID:   "u1",
		StartDate: "2026-04-01",
		EndDate:   "2026-04-30",
	})
	require.NoError(t, err)

	assert.Equal(t, 30, stmt.DaysInPeriod)
	assert.Equal(t, "100.00", stmt.DailyRate.StringFixed(2))
	assert.Equal(t, "1", stmt.LopDays.String())
	assert.Equal(t, 2, stmt.MissedDays)
	assert.Equal(t, "300.00", stmt.Deduction.StringFixed(2))
	assert.Equal(t, "2700.00", stmt.NetSalary.StringFixed(2))
}

func TestCalculateHalfDayUnpaidLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")
	f.workAllWorkdays(periodStart, periodEnd)

	f.leaves.days["2026-03-09"] = leave.DayInfo{OnLeave: true, IsHalfDay: true, Type: leave.TypeUnpaid}

	stmt, err := f.svc.Calculate(ctx, marchRequest())
	require.NoError(t, err)

	assert.Equal(t, "0.5", stmt.LopDays.String())
	assert.Equal(t, "50.00", stmt.Deduction.StringFixed(2))
	assert.Equal(t, "3050.00", stmt.NetSalary.StringFixed(2))
}

func TestCalculatePaidLeaveNotDeducted(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")
	f.workAllWorkdays(periodStart, periodEnd)

	f.leaves.days["2026-03-09"] = leave.DayInfo{OnLeave: true, Type: leave.TypeCasual}
	delete(f.entries.workedDates, "2026-03-09")

	stmt, err := f.svc.Calculate(ctx, marchRequest())
	require.NoError(t, err)

	assert.True(t, stmt.LopDays.IsZero())
	assert.Zero(t, stmt.MissedDays)
	assert.Equal(t, "3100.00", stmt.NetSalary.StringFixed(2))
}

func TestCalculateWeekendsNeverDeducted(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")
	f.workAllWorkdays(periodStart, periodEnd)

	// Weekends carry no leave and no entries; they must not count as missed.
	stmt, err := f.svc.Calculate(ctx, marchRequest())
	require.NoError(t, err)
	assert.Zero(t, stmt.MissedDays)
}

func TestCalculateDeterministic(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")
	f.workAllWorkdays(periodStart, periodEnd)
	f.leaves.days["2026-03-09"] = leave.DayInfo{OnLeave: true, Type: leave.TypeUnpaid}

	first, err := f.svc.Calculate(ctx, marchRequest())
	require.NoError(t, err)
	second, err := f.svc.Calculate(ctx, marchRequest())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateWithoutSalaryConfig(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")

	req := marchRequest()
	req.OwnerID = "unknown"
	_, err := f.svc.Calculate(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrSalaryNotConfigured)
}

func TestCalculateRejectsReversedPeriod(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")

	_, err := f.svc.Calculate(ctx, payroll.CalculateRequest{
		OwnerID:   "u1",
		StartDate: "2026-03-31",
		EndDate:   "2026-03-01",
	})
	assert.Error(t, err)
}

func TestUpsertSalary(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")

	cfg, err := f.svc.UpsertSalary(ctx, payroll.UpsertSalaryRequest{
		OwnerID:    "u2",
		BaseSalary: "5200.50",
		Currency:   "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "5200.5", cfg.BaseSalary.String())

	got, err := f.svc.GetSalary(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, got.BaseSalary.Equal(cfg.BaseSalary))
}

func TestUpsertSalaryValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture("3100")

	_, err := f.svc.UpsertSalary(ctx, payroll.UpsertSalaryRequest{
		OwnerID:    "u2",
		BaseSalary: "-100",
		Currency:   "USD",
	})
	assert.Error(t, err)
}
