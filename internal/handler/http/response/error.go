package response

import (
	"errors"
	"net/http"

	"github.com/loomhr/leave-backend-go/internal/domain/employee"
	"github.com/loomhr/leave-backend-go/internal/domain/leave"
	"github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/domain/user"
	"github.com/loomhr/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrTenantMismatch):
		Forbidden(w, "User does not belong to this tenant")
	case errors.Is(err, user.ErrAccountNotApproved):
		Forbidden(w, "User account is not approved")
	case errors.Is(err, user.ErrReviewerRequired):
		Forbidden(w, "Reviewer role required")
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, "Admin role required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMetricsNotFound):
		NotFound(w, "Performance metrics not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyReviewed):
		Conflict(w, "Leave request already reviewed")
	case errors.Is(err, leave.ErrEditNotAllowed):
		Forbidden(w, "Only pending leave requests can be edited by their owner")
	case errors.Is(err, leave.ErrDeleteNotAllowed):
		Forbidden(w, "Only pending leave requests can be deleted by their owner")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")

	// SLA domain errors
	case errors.Is(err, sla.ErrConfigNotFound):
		NotFound(w, "SLA config not found")
	case errors.Is(err, sla.ErrMetricNotFound):
		NotFound(w, "SLA metric not found")
	case errors.Is(err, sla.ErrMetricFinalized):
		Conflict(w, "SLA metric already finalized")
	case errors.Is(err, sla.ErrMetricNotPending):
		Conflict(w, "SLA metric is not pending")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
