package payroll

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/calendar"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/payroll"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timeentry"
)

type PayrollServiceImpl struct {
	payroll.SalaryConfigRepository
	entryRepo    timeentry.TimeEntryRepository
	calendarRepo calendar.WorkCalendarRepository
	leaveService leave.LeaveService
}

func NewPayrollService(
	salaryRepo payroll.SalaryConfigRepository,
	entryRepo timeentry.TimeEntryRepository,
	calendarRepo calendar.WorkCalendarRepository,
	leaveService leave.LeaveService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		SalaryConfigRepository: salaryRepo,
		entryRepo:              entryRepo,
		calendarRepo:           calendarRepo,
		leaveService:           leaveService,
	}
}

var half = decimal.NewFromFloat(0.5)

// Calculate implements payroll.PayrollService. Each work day in the period
// is classified exactly once: unpaid leave accrues loss-of-pay, paid leave
// counts as attended, and a day with neither leave nor a logged entry counts
// as missed.
func (p *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.Statement, error) {
	if err := req.Validate(); err != nil {
		return payroll.Statement{}, err
	}

	start, end := req.Dates()
	if end.Before(start) {
		return payroll.Statement{}, payroll.ErrInvalidPeriod
	}

	salary, err := p.SalaryConfigRepository.Get(ctx, req.OwnerID)
	if err != nil {
		return payroll.Statement{}, err
	}

	cfg, err := p.calendarRepo.Get(ctx)
	if err != nil {
		return payroll.Statement{}, err
	}

	daysInPeriod := int(end.Sub(start).Hours()/24) + 1

	var workDays, missedDays int
	lopDays := decimal.Zero

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !cfg.IsWorkDay(day) {
			continue
		}
		workDays++

		info, err := p.leaveService.IsOnApprovedLeave(ctx, req.OwnerID, day)
		if err != nil {
			return payroll.Statement{}, err
		}

		if info.OnLeave {
			if info.Type == leave.TypeUnpaid {
				if info.IsHalfDay {
					lopDays = lopDays.Add(half)
				} else {
					lopDays = lopDays.Add(decimal.NewFromInt(1))
				}
			}
			continue
		}

		// Any entry starting on the day excuses it, break kinds included.
		entries, err := p.entryRepo.ListRange(ctx, req.OwnerID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return payroll.Statement{}, fmt.Errorf("failed to list day entries: %w", err)
		}
		if len(entries) == 0 {
			missedDays++
		}
	}

	stmt := payroll.Statement{
		OwnerID:      req.OwnerID,
		PeriodStart:  start,
		PeriodEnd:    end,
		DaysInPeriod: daysInPeriod,
		WorkDays:     workDays,
		LopDays:      lopDays,
		MissedDays:   missedDays,
		BaseSalary:   salary.BaseSalary,
		Currency:     salary.Currency,
	}
	applyDeduction(&stmt)
	return stmt, nil
}

// applyDeduction fills in the money fields from the counted days. The daily
// rate is base salary over calendar days in the period, not work days.
func applyDeduction(s *payroll.Statement) {
	s.DailyRate = s.BaseSalary.Div(decimal.NewFromInt(int64(s.DaysInPeriod)))
	deductible := s.LopDays.Add(decimal.NewFromInt(int64(s.MissedDays)))
	s.Deduction = s.DailyRate.Mul(deductible)
	s.NetSalary = s.BaseSalary.Sub(s.Deduction)
}

// GetSalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetSalary(ctx context.Context, ownerID string) (payroll.SalaryConfig, error) {
	return p.SalaryConfigRepository.Get(ctx, ownerID)
}

// UpsertSalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpsertSalary(ctx context.Context, req payroll.UpsertSalaryRequest) (payroll.SalaryConfig, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryConfig{}, err
	}

	return p.SalaryConfigRepository.Upsert(ctx, payroll.SalaryConfig{
		OwnerID:    req.OwnerID,
		BaseSalary: req.Amount(),
		Currency:   req.Currency,
	})
}
