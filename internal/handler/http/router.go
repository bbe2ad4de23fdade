package http

import (
	"log/slog"
	"os"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/handler/http/middleware"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	entryHandler TimeEntryHandler,
	leaveHandler LeaveHandler,
	timesheetHandler TimesheetHandler,
	payrollHandler PayrollHandler,
	calendarHandler CalendarHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timekeeping-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/time-entries", func(r chi.Router) {
				r.Post("/start", entryHandler.Start)
				r.Post("/stop", entryHandler.Stop)
				r.Get("/active", entryHandler.Active)
				r.Get("/day", entryHandler.ListDay)
				r.Get("/week", entryHandler.ListWeek)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", entryHandler.CreateManual)
					r.Delete("/{id}", entryHandler.Delete)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.Book)
					r.Put("/", leaveHandler.Edit)
					r.Get("/my", leaveHandler.ListMine)

					// Admin only
					r.With(middleware.AdminOnly).Post("/review", leaveHandler.Review)
				})
				r.Get("/balances", leaveHandler.Balances)

				r.Route("/policies", func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", leaveHandler.ListPolicies)
					r.Put("/", leaveHandler.UpsertPolicy)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/submit", timesheetHandler.Submit)
				r.Get("/my", timesheetHandler.Get)
				r.Get("/summary", timesheetHandler.Summary)

				// Admin only
				r.With(middleware.AdminOnly).Post("/review", timesheetHandler.Review)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Get("/salary", payrollHandler.GetSalary)

				// Admin only
				r.With(middleware.AdminOnly).Put("/salary", payrollHandler.UpsertSalary)
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/", calendarHandler.Get)

				// Admin only
				r.With(middleware.AdminOnly).Put("/", calendarHandler.Update)
			})
		})
	})
	return r
}
