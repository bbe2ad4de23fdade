package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/calendar"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/handler/http/response"
)

type CalendarHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendarService calendar.WorkCalendarService
}

func NewCalendarHandler(calendarService calendar.WorkCalendarService) CalendarHandler {
	return &CalendarHandlerImpl{calendarService: calendarService}
}

// Get implements CalendarHandler.
func (h *CalendarHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.calendarService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toCalendarResponse(cfg))
}

// Update implements CalendarHandler. Admin only.
func (h *CalendarHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpdateWorkCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update calendar decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.calendarService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work calendar updated", toCalendarResponse(cfg))
}

func toCalendarResponse(cfg calendar.WorkCalendarConfig) calendar.WorkCalendarResponse {
	return calendar.WorkCalendarResponse{
		StartDay:       strings.ToLower(cfg.StartDay.String()),
		DaysPerWeek:    cfg.DaysPerWeek,
		MinWeeklyHours: cfg.MinWeeklyHours,
		MinDailyHours:  cfg.MinDailyHours,
	}
}
