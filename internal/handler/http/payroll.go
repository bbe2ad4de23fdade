package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/payroll"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/user"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	GetSalary(w http.ResponseWriter, r *http.Request)

	UpsertSalary(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Calculate implements PayrollHandler. Non-admins may only evaluate
// themselves.
func (h *PayrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Calculate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !identity.IsAdmin() {
		req.OwnerID = identity.UserID
	}

	stmt, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewStatementResponse(stmt))
}

// GetSalary implements PayrollHandler. Non-admins see only their own record.
func (h *PayrollHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	identity, err := user.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	ownerID := identity.UserID
	if identity.IsAdmin() {
		if q := r.URL.Query().Get("owner_id"); q != "" {
			ownerID = q
		}
	}

	cfg, err := h.payrollService.GetSalary(r.Context(), ownerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewSalaryResponse(cfg))
}

// UpsertSalary implements PayrollHandler. Admin only.
func (h *PayrollHandlerImpl) UpsertSalary(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.payrollService.UpsertSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary configuration saved", payroll.NewSalaryResponse(cfg))
}
