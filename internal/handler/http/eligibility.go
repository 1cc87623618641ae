package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/eligibility"
	"github.com/loomhr/leave-backend-go/internal/handler/http/middleware"
	"github.com/loomhr/leave-backend-go/internal/handler/http/response"
)

type EligibilityHandler interface {
	EvaluateEmployee(w http.ResponseWriter, r *http.Request)
	EvaluateRequest(w http.ResponseWriter, r *http.Request)
}

type eligibilityHandlerImpl struct {
	eligibilityService eligibility.Service
}

func NewEligibilityHandler(eligibilityService eligibility.Service) EligibilityHandler {
	return &eligibilityHandlerImpl{eligibilityService: eligibilityService}
}

// EvaluateEmployee scores an employee's general standing. Reviewer-only:
// scores expose performance and behavior data.
func (h *eligibilityHandlerImpl) EvaluateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	score, err := h.eligibilityService.EvaluateEmployee(r.Context(), middleware.TenantID(r), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, score)
}

// EvaluateRequest scores a specific request, including the workload factor
// for its date range.
func (h *eligibilityHandlerImpl) EvaluateRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	score, err := h.eligibilityService.EvaluateRequest(r.Context(), middleware.TenantID(r), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, score)
}
