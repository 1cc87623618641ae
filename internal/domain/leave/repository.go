package leave

import (
	"context"
	"time"
)

// RequestRepository - interface for leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	Update(ctx context.Context, patch UpdateRequestPatch) error
	Delete(ctx context.Context, id string) error

	// Decide atomically moves a pending request to a terminal status.
	// Returns false when the request was no longer pending (compare-and-swap
	// on status, so two racing decisions can never both win).
	Decide(ctx context.Context, id string, status Status, reviewerID string, comment *string, reviewedAt time.Time) (bool, error)

	// SetDeductedDays records the balance days actually deducted at approval,
	// so deletion can restore the exact amount.
	SetDeductedDays(ctx context.Context, id string, days float64) error

	ListByTenant(ctx context.Context, tenantID string, filter RequestFilter) ([]Request, int64, error)
	ListPendingByTenant(ctx context.Context, tenantID string) ([]Request, error)

	// CountOverlapping counts approved-or-pending requests of OTHER employees
	// in the tenant whose date range overlaps [start, end].
	CountOverlapping(ctx context.Context, tenantID, excludeEmployeeID string, start, end time.Time) (int, error)

	// UsedDaysInYear sums approved leave days for an employee in a calendar year.
	UsedDaysInYear(ctx context.Context, employeeID string, year int) (float64, error)
}
