package user

import "time"

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// CanReview reports whether the role may decide leave requests.
func (r Role) CanReview() bool {
	return r == RoleSupervisor || r == RoleAdmin || r == RoleSuperadmin
}

// IsAdmin reports whether the role carries admin privileges (edit/delete
// regardless of request status, SLA config updates).
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusApproved  AccountStatus = "approved"
	AccountStatusSuspended AccountStatus = "suspended"
)

// User entity
type User struct {
	ID       string
	TenantID string
	FullName string
	Email    string
	Role     Role
	Status   AccountStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
