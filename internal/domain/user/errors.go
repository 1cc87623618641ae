package user

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrTenantMismatch     = errors.New("User does not belong to this tenant")
	ErrAccountNotApproved = errors.New("User account is not approved")
	ErrReviewerRequired   = errors.New("Reviewer role required")
	ErrAdminRequired      = errors.New("Admin role required")
)
