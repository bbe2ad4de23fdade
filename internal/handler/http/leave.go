package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/user"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/handler/http/response"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/clock"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
)

type LeaveHandler interface {
	Book(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)

	Review(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
	UpsertPolicy(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	clock        clock.Clock
}

func NewLeaveHandler(leaveService leave.LeaveService, clk clock.Clock) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService, clock: clk}
}

// Book implements LeaveHandler.
func (h *LeaveHandlerImpl) Book(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Book decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	booked, err := h.leaveService.Book(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time-off request created", leave.NewResponse(booked))
}

// Edit implements LeaveHandler. Only the requester's own pending request.
func (h *LeaveHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Edit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.leaveService.EditPending(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time-off request updated", leave.NewResponse(updated))
}

// ListMine implements LeaveHandler. Optional filters: ?status=, ?type=,
// ?start_date=, ?end_date=.
func (h *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter leave.RequestFilter
	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		status := leave.RequestStatus(s)
		filter.Status = &status
	}
	if t := q.Get("type"); t != "" {
		leaveType := leave.LeaveType(t)
		if !leaveType.IsValid() {
			response.HandleError(w, leave.ErrUnknownLeaveType)
			return
		}
		filter.Type = &leaveType
	}
	if s := q.Get("start_date"); s != "" {
		d, ok := validator.IsValidDate(s)
		if !ok {
			response.BadRequest(w, "start_date must be a YYYY-MM-DD date", nil)
			return
		}
		filter.StartDate = &d
	}
	if s := q.Get("end_date"); s != "" {
		d, ok := validator.IsValidDate(s)
		if !ok {
			response.BadRequest(w, "end_date must be a YYYY-MM-DD date", nil)
			return
		}
		filter.EndDate = &d
	}

	requests, err := h.leaveService.ListRequests(r.Context(), identity.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.TimeOffResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, leave.NewResponse(req))
	}
	response.Success(w, out)
}

// Balances implements LeaveHandler.
func (h *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balances, err := h.leaveService.Balances(r.Context(), identity.UserID, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, leave.NewBalanceResponse(b))
	}
	response.Success(w, out)
}

// Review implements LeaveHandler. Admin only.
func (h *LeaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	reviewed, err := h.leaveService.Review(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time-off request reviewed", leave.NewResponse(reviewed))
}

// ListPolicies implements LeaveHandler. Admin only.
func (h *LeaveHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.leaveService.ListPolicies(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policies)
}

// UpsertPolicy implements LeaveHandler. Admin only; the unpaid type is
// rejected.
func (h *LeaveHandlerImpl) UpsertPolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.UpsertPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertPolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	policy, err := h.leaveService.UpsertPolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance policy saved", policy)
}
