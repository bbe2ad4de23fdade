package response

import (
	"errors"
	"net/http"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/leave"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/payroll"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timeentry"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/timesheet"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/user"
	"github.com/clockwise-suite/timekeeping-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A short week is a business rejection, not a fault
	var insufficient *timesheet.InsufficientHoursError
	if errors.As(err, &insufficient) {
		BadRequest(w, insufficient.Error(), nil)
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Time entry domain errors
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timeentry.ErrNoActiveTimer):
		BadRequest(w, "No active timer", nil)
	case errors.Is(err, timeentry.ErrTimerConflict):
		Conflict(w, "An active timer already exists")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Time-off request not found")
	case errors.Is(err, leave.ErrAlreadyReviewed):
		Conflict(w, "Time-off request already reviewed")
	case errors.Is(err, leave.ErrNotPending):
		Conflict(w, "Time-off request is no longer pending")
	case errors.Is(err, leave.ErrUnknownLeaveType):
		BadRequest(w, "Unknown leave type", nil)
	case errors.Is(err, leave.ErrReservedLeaveType):
		BadRequest(w, "The unpaid leave type is not editable", nil)
	case errors.Is(err, leave.ErrPolicyNotFound):
		NotFound(w, "Leave balance policy not found")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrWeekApproved):
		Conflict(w, "Week already approved")
	case errors.Is(err, timesheet.ErrNotSubmitted):
		Conflict(w, "Timesheet is not awaiting review")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryNotConfigured):
		NotFound(w, "Salary not configured for this person")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
