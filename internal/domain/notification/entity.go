package notification

import "time"

type Type string

const (
	TypeLeaveSubmitted Type = "leave_submitted"
	TypeLeaveApproved  Type = "leave_approved"
	TypeLeaveRejected  Type = "leave_rejected"
	TypeLeaveUpdated   Type = "leave_updated"
	TypeSLAWarning     Type = "sla_warning"
	TypeSLACritical    Type = "sla_critical"
	TypeSLABreach      Type = "sla_breach"
)

// Notification entity
type Notification struct {
	ID          string
	TenantID    string
	RecipientID string
	SenderID    *string
	Type        Type
	Title       string
	Message     string
	RelatedID   *string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
