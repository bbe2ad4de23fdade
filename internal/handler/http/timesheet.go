package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timesheet"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/user"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/handler/http/response"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/clock"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
)

type TimesheetHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)

	Review(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	clock            clock.Clock
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, clk clock.Clock) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService, clock: clk}
}

// Submit implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	sheet, err := h.timesheetService.Submit(r.Context(), identity.UserID, req.Date())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet submitted", timesheet.NewResponse(sheet))
}

// Get implements TimesheetHandler. ?date=YYYY-MM-DD names any day of the
// week; default today.
func (h *TimesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	day, ok := h.dateParam(r)
	if !ok {
		response.BadRequest(w, "date must be a YYYY-MM-DD date", nil)
		return
	}

	sheet, err := h.timesheetService.Get(r.Context(), identity.UserID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.NewResponse(sheet))
}

// Summary implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	day, ok := h.dateParam(r)
	if !ok {
		response.BadRequest(w, "date must be a YYYY-MM-DD date", nil)
		return
	}

	summary, err := h.timesheetService.WeeklySummary(r.Context(), identity.UserID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := map[string]interface{}{
		"week_start":         summary.WeekStart.Format("2006-01-02"),
		"worked_hours":       summary.WorkedHours,
		"leave_credit_hours": summary.LeaveCreditHours,
		"total_hours":        summary.TotalHours,
		"min_weekly_hours":   summary.MinWeeklyHours,
		"has_active_timer":   summary.HasActiveTimer,
	}
	if summary.Submission != nil {
		out["submission"] = timesheet.NewResponse(*summary.Submission)
	}
	response.Success(w, out)
}

// Review implements TimesheetHandler. Admin only.
func (h *TimesheetHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sheet, err := h.timesheetService.Review(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet reviewed", timesheet.NewResponse(sheet))
}

func (h *TimesheetHandlerImpl) dateParam(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.clock.Now(), true
	}
	return validator.IsValidDate(raw)
}
