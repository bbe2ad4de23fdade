package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/config"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/fixtures"
	appHTTP "github.com/clockwise-suite/timekeeping-backend-go/internal/handler/http"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/clock"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/database"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/jwt"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/repository/postgresql"
	calendarDomain "github.com/clockwise-suite/timekeeping-backend-go/internal/domain/calendar"
	leaveDomain "github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	calendarService "github.com/clockwise-suite/timekeeping-backend-go/internal/service/calendar"
	leaveService "github.com/clockwise-suite/timekeeping-backend-go/internal/service/leave"
	payrollService "github.com/clockwise-suite/timekeeping-backend-go/internal/service/payroll"
	timeentryService "github.com/clockwise-suite/timekeeping-backend-go/internal/service/timeentry"
	timesheetService "github.com/clockwise-suite/timekeeping-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	if err := postgresql.Migrate(context.Background(), db); err != nil {
		log.Fatal("Failed to migrate database schema:", err)
	}

	entryRepo := postgresql.NewTimeEntryRepository(db)
	timeOffRepo := postgresql.NewTimeOffRepository(db)
	policyRepo := postgresql.NewBalancePolicyRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	calendarRepo := postgresql.NewWorkCalendarRepository(db)
	salaryRepo := postgresql.NewSalaryConfigRepository(db)

	if err := seedCalendar(calendarRepo, cfg.Engine); err != nil {
		log.Fatal("Failed to seed work calendar:", err)
	}
	if err := seedPolicies(policyRepo); err != nil {
		log.Fatal("Failed to seed leave policies:", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	transactor := postgresql.NewTransactor(db)
	clk := clock.System()

	entrySvc := timeentryService.NewTimeEntryService(transactor, entryRepo, clk)
	leaveSvc := leaveService.NewLeaveService(timeOffRepo, policyRepo, clk)
	timesheetSvc := timesheetService.NewTimesheetService(transactor, timesheetRepo, entryRepo, calendarRepo, leaveSvc, clk)
	payrollSvc := payrollService.NewPayrollService(salaryRepo, entryRepo, calendarRepo, leaveSvc)
	calendarSvc := calendarService.NewWorkCalendarService(calendarRepo)

	entryHandler := appHTTP.NewTimeEntryHandler(entrySvc, clk)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, clk)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, clk)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)

	router := appHTTP.NewRouter(
		JWTService,
		entryHandler,
		leaveHandler,
		timesheetHandler,
		payrollHandler,
		calendarHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// seedCalendar writes the configured work-week defaults on first boot. A
// calendar already edited through the API is left alone.
func seedCalendar(repo calendarDomain.WorkCalendarRepository, engine config.EngineConfig) error {
	startDay, ok := validator.IsValidWeekday(engine.WeekStartDay)
	if !ok {
		return fmt.Errorf("invalid WEEK_START_DAY %q", engine.WeekStartDay)
	}

	return repo.Seed(context.Background(), calendarDomain.WorkCalendarConfig{
		StartDay:       startDay,
		DaysPerWeek:    engine.DaysPerWeek,
		MinWeeklyHours: engine.MinWeeklyHours,
		MinDailyHours:  engine.MinDailyHours,
	})
}

// seedPolicies writes the default allowance table when no policy rows exist.
func seedPolicies(repo leaveDomain.BalancePolicyRepository) error {
	ctx := context.Background()

	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, policy := range fixtures.DefaultBalancePolicies() {
		if _, err := repo.Upsert(ctx, policy); err != nil {
			return err
		}
	}
	return nil
}
