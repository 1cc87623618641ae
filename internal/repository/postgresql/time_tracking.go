package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/employee"
	"github.com/loomhr/leave-backend-go/internal/pkg/database"
)

type timeTrackingRepository struct {
	db *database.DB
}

func NewTimeTrackingRepository(db *database.DB) employee.TimeTrackingRepository {
	return &timeTrackingRepository{db: db}
}

// GetSummary reports ok=false when the employee has no tracked days; the
// scoring engine then falls back to performance-derived attendance.
func (r *timeTrackingRepository) GetSummary(ctx context.Context, employeeID string) (employee.TimeTrackingSummary, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, total_days, late_days, absent_days, early_leaves,
			   window_start, window_end
		FROM time_tracking_summaries
		WHERE employee_id = $1
	`

	var s employee.TimeTrackingSummary
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.EmployeeID, &s.TotalDays, &s.LateDays, &s.AbsentDays, &s.EarlyLeaves,
		&s.WindowStart, &s.WindowEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.TimeTrackingSummary{}, false, nil
		}
		return employee.TimeTrackingSummary{}, false, err
	}

	return s, true, nil
}
