package postgresql

import (
	"context"

	"github.com/loomhr/leave-backend-go/internal/domain/employee"
	"github.com/loomhr/leave-backend-go/internal/pkg/database"
)

type behaviorNoteRepository struct {
	db *database.DB
}

func NewBehaviorNoteRepository(db *database.DB) employee.BehaviorNoteRepository {
	return &behaviorNoteRepository{db: db}
}

func (r *behaviorNoteRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]employee.BehaviorNote, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, sentiment, note, created_by, created_at
		FROM behavior_notes
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []employee.BehaviorNote
	for rows.Next() {
		var n employee.BehaviorNote
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Sentiment, &n.Note, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}
