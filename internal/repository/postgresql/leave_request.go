package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/leave"
	"github.com/loomhr/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.tenant_id, lr.employee_id,
	lr.kind, lr.start_date, lr.end_date, lr.days, lr.reason, lr.comment,
	lr.status, lr.review_comment, lr.reviewed_by, lr.reviewed_at, lr.deducted_days,
	lr.submitted_at, lr.created_at, lr.updated_at`

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, tenant_id, employee_id,
			kind, start_date, end_date, days, reason, comment,
			status, submitted_at,
			created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8, $9,
			$10, $11,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.TenantID, request.EmployeeID,
		request.Kind, request.StartDate, request.EndDate, request.Days, request.Reason, request.Comment,
		request.Status, request.SubmittedAt,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.Request{}, err
	}

	return request, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1
	`, leaveRequestColumns)

	var req leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.TenantID, &req.EmployeeID,
		&req.Kind, &req.StartDate, &req.EndDate, &req.Days, &req.Reason, &req.Comment,
		&req.Status, &req.ReviewComment, &req.ReviewedBy, &req.ReviewedAt, &req.DeductedDays,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}

	return req, nil
}

func (r *leaveRequestRepository) Update(ctx context.Context, patch leave.UpdateRequestPatch) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{}
	args := []interface{}{}
	argPos := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if patch.Kind != nil {
		addClause("kind", *patch.Kind)
	}
	if patch.StartDate != nil {
		addClause("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		addClause("end_date", *patch.EndDate)
	}
	if patch.Days != nil {
		addClause("days", *patch.Days)
	}
	if patch.Reason != nil {
		addClause("reason", *patch.Reason)
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE leave_requests
		SET %s
		WHERE id = $%d
	`, strings.Join(setClauses, ", "), argPos)
	args = append(args, patch.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// Decide is the compare-and-swap on status: the WHERE status = 'pending'
// guard means at most one caller ever observes RowsAffected = 1.
func (r *leaveRequestRepository) Decide(ctx context.Context, id string, status leave.Status, reviewerID string, comment *string, reviewedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, review_comment = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, status, reviewerID, comment, reviewedAt, id)
	if err != nil {
		return false, err
	}

	return commandTag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepository) SetDeductedDays(ctx context.Context, id string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET deducted_days = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

func (r *leaveRequestRepository) ListByTenant(ctx context.Context, tenantID string, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"lr.tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	addFilter := func(clause string, value interface{}) {
		whereClauses = append(whereClauses, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.EmployeeID != nil {
		addFilter("lr.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil {
		addFilter("lr.status = $%d", *filter.Status)
	}
	if filter.Kind != nil {
		addFilter("lr.kind = $%d", *filter.Kind)
	}
	if filter.StartDate != nil {
		addFilter("lr.end_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addFilter("lr.start_date <= $%d", *filter.EndDate)
	}

	where := strings.Join(whereClauses, " AND ")

	sortBy := "lr.submitted_at"
	switch filter.SortBy {
	case "start_date":
		sortBy = "lr.start_date"
	case "status":
		sortBy = "lr.status"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leave_requests lr WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, where, sortBy, sortOrder, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.TenantID, &req.EmployeeID,
			&req.Kind, &req.StartDate, &req.EndDate, &req.Days, &req.Reason, &req.Comment,
			&req.Status, &req.ReviewComment, &req.ReviewedBy, &req.ReviewedAt, &req.DeductedDays,
			&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

func (r *leaveRequestRepository) ListPendingByTenant(ctx context.Context, tenantID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.tenant_id = $1 AND lr.status = 'pending'
		ORDER BY lr.submitted_at ASC
	`, leaveRequestColumns)

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.TenantID, &req.EmployeeID,
			&req.Kind, &req.StartDate, &req.EndDate, &req.Days, &req.Reason, &req.Comment,
			&req.Status, &req.ReviewComment, &req.ReviewedBy, &req.ReviewedAt, &req.DeductedDays,
			&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepository) CountOverlapping(ctx context.Context, tenantID, excludeEmployeeID string, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE tenant_id = $1
		  AND employee_id != $2
		  AND status IN ('pending', 'approved')
		  AND start_date <= $3
		  AND end_date >= $4
	`

	var count int
	err := q.QueryRow(ctx, query, tenantID, excludeEmployeeID, end, start).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *leaveRequestRepository) UsedDaysInYear(ctx context.Context, employeeID string, year int) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) = $2
	`

	var used float64
	err := q.QueryRow(ctx, query, employeeID, year).Scan(&used)
	if err != nil {
		return 0, err
	}

	return used, nil
}
