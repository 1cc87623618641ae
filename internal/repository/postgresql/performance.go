package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/employee"
	"github.com/loomhr/leave-backend-go/internal/pkg/database"
)

type performanceRepository struct {
	db *database.DB
}

func NewPerformanceRepository(db *database.DB) employee.PerformanceRepository {
	return &performanceRepository{db: db}
}

func (r *performanceRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.PerformanceMetrics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, kpi_score, project_completion_rate, deadline_adherence_rate,
			   punctuality_score, absence_rate, late_arrivals, updated_at
		FROM performance_metrics
		WHERE employee_id = $1
	`

	var m employee.PerformanceMetrics
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&m.EmployeeID, &m.KPIScore, &m.ProjectCompletionRate, &m.DeadlineAdherenceRate,
		&m.PunctualityScore, &m.AbsenceRate, &m.LateArrivals, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.PerformanceMetrics{}, employee.ErrMetricsNotFound
		}
		return employee.PerformanceMetrics{}, err
	}

	return m, nil
}
