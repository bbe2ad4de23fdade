package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timeentry"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/user"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/handler/http/response"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/clock"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type TimeEntryHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Stop(w http.ResponseWriter, r *http.Request)
	Active(w http.ResponseWriter, r *http.Request)
	ListDay(w http.ResponseWriter, r *http.Request)
	ListWeek(w http.ResponseWriter, r *http.Request)

	CreateManual(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TimeEntryHandlerImpl struct {
	entryService timeentry.TimeEntryService
	clock        clock.Clock
}

func NewTimeEntryHandler(entryService timeentry.TimeEntryService, clk clock.Clock) TimeEntryHandler {
	return &TimeEntryHandlerImpl{entryService: entryService, clock: clk}
}

// Start implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeentry.StartTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Start decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.entryService.StartTimer(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timer started", timeentry.NewResponse(entry, h.clock.Now()))
}

// Stop implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) Stop(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.entryService.StopTimer(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timer stopped", timeentry.NewResponse(entry, h.clock.Now()))
}

// Active implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) Active(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.entryService.ActiveEntry(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timeentry.NewResponse(entry, h.clock.Now()))
}

// ListDay implements TimeEntryHandler. ?date=YYYY-MM-DD, default today.
func (h *TimeEntryHandlerImpl) ListDay(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	day, ok := h.dateParam(r, "date")
	if !ok {
		response.BadRequest(w, "date must be a YYYY-MM-DD date", nil)
		return
	}

	entries, err := h.entryService.EntriesForDay(r.Context(), identity.UserID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.toResponses(entries))
}

// ListWeek implements TimeEntryHandler. ?date=YYYY-MM-DD names any day of the
// week; default today.
func (h *TimeEntryHandlerImpl) ListWeek(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	day, ok := h.dateParam(r, "date")
	if !ok {
		response.BadRequest(w, "date must be a YYYY-MM-DD date", nil)
		return
	}

	entries, err := h.entryService.EntriesForWeek(r.Context(), identity.UserID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.toResponses(entries))
}

// CreateManual implements TimeEntryHandler. Admin only.
func (h *TimeEntryHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req timeentry.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateManual decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.entryService.RecordManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time entry recorded", timeentry.NewResponse(entry, h.clock.Now()))
}

// Delete implements TimeEntryHandler. Admin only.
func (h *TimeEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	if err := h.entryService.DeleteEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry deleted", nil)
}

func (h *TimeEntryHandlerImpl) dateParam(r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return h.clock.Now(), true
	}
	return validator.IsValidDate(raw)
}

func (h *TimeEntryHandlerImpl) toResponses(entries []timeentry.TimeEntry) []timeentry.TimeEntryResponse {
	now := h.clock.Now()
	out := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, timeentry.NewResponse(e, now))
	}
	return out
}
