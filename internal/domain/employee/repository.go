package employee

import (
	"context"
)

// Repository - interface for employees table
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	// AdjustBalance adds delta (negative to deduct) to the given balance
	// field, flooring the result at zero. Returns the change actually
	// applied (new minus old), which is smaller in magnitude than delta
	// when the floor clamps a deduction.
	AdjustBalance(ctx context.Context, employeeID string, field BalanceField, delta float64) (float64, error)
}

// PerformanceRepository - read-only source of performance metrics.
// Returns ErrMetricsNotFound when no record exists for the employee.
type PerformanceRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (PerformanceMetrics, error)
}

// TimeTrackingRepository - read-only source of attendance samples.
type TimeTrackingRepository interface {
	GetSummary(ctx context.Context, employeeID string) (TimeTrackingSummary, bool, error)
}

// BehaviorNoteRepository - read-only source of manager notes.
type BehaviorNoteRepository interface {
	ListByEmployeeID(ctx context.Context, employeeID string) ([]BehaviorNote, error)
}
