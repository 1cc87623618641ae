package eligibility

import (
	"context"
)

type Service interface {
	// EvaluateEmployee scores an employee's general standing (no workload
	// factor; supervisor rating replaces behavior when available).
	EvaluateEmployee(ctx context.Context, tenantID, employeeID string) (Score, error)
	// EvaluateRequest scores a specific pending request, including the
	// workload/conflict factor for its date range.
	EvaluateRequest(ctx context.Context, tenantID, requestID string) (Score, error)
}
