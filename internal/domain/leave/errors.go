package leave

import "errors"

var (
	ErrRequestNotFound  = errors.New("Leave request not found")
	ErrAlreadyReviewed  = errors.New("Leave request already reviewed")
	ErrEditNotAllowed   = errors.New("Only pending leave requests can be edited by their owner")
	ErrDeleteNotAllowed = errors.New("Only pending leave requests can be deleted by their owner")
	ErrNotRequestOwner  = errors.New("Leave request belongs to another employee")
)
