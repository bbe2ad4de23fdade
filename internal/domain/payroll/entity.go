package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryConfig - one record per person. Absence of a record means payroll is
// not computable for that person.
type SalaryConfig struct {
	OwnerID    string
	BaseSalary decimal.Decimal // period-agnostic monthly figure
	Currency   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Statement is the result of evaluating one owner over one date range.
type Statement struct {
	OwnerID      string
	PeriodStart  time.Time
	PeriodEnd    time.Time // inclusive
	DaysInPeriod int
	WorkDays     int

	LopDays    decimal.Decimal // unpaid-leave work days (0.5 steps)
	MissedDays int             // work days with no leave and no logged time

	BaseSalary decimal.Decimal
	DailyRate  decimal.Decimal
	Deduction  decimal.Decimal
	NetSalary  decimal.Decimal
	Currency   string
}
