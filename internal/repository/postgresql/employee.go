package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/employee"
	"github.com/loomhr/leave-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, user_id, tenant_id, full_name,
	paid_leave_balance, sick_leave_balance, family_leave_balance,
	annual_leave_allowance, supervisor_rating,
	hire_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.TenantID, &e.FullName,
		&e.PaidLeaveBalance, &e.SickLeaveBalance, &e.FamilyLeaveBalance,
		&e.AnnualLeaveAllowance, &e.SupervisorRating,
		&e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE user_id = $1`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return e, nil
}

// AdjustBalance adds delta to the given balance column, flooring at zero,
// and returns the change actually applied (new minus old). The row is locked
// so the pre-update value the RETURNING clause reads cannot move underneath
// the update. The field name comes from the BalanceField enum, never caller
// input.
func (r *employeeRepository) AdjustBalance(ctx context.Context, employeeID string, field employee.BalanceField, delta float64) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE employees e
		SET %s = GREATEST(cur.prev + $1, 0), updated_at = NOW()
		FROM (SELECT id, %s AS prev FROM employees WHERE id = $2 FOR UPDATE) cur
		WHERE e.id = cur.id
		RETURNING e.%s - cur.prev
	`, field, field, field)

	var applied float64
	if err := q.QueryRow(ctx, query, delta, employeeID).Scan(&applied); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, employee.ErrEmployeeNotFound
		}
		return 0, err
	}

	return applied, nil
}
