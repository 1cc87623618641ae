package user

import (
	"context"
)

// Repository - interface for users table
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	// ListReviewers returns approved admins/supervisors of a tenant.
	ListReviewers(ctx context.Context, tenantID string) ([]User, error)
}
