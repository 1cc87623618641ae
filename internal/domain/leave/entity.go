package leave

import (
	"time"

	"github.com/loomhr/leave-backend-go/internal/domain/employee"
)

type Kind string

const (
	KindPaid   Kind = "paid"
	KindUnpaid Kind = "unpaid"
	KindSick   Kind = "sick"
	KindFamily Kind = "family"
	KindDoctor Kind = "doctor"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPaid, KindUnpaid, KindSick, KindFamily, KindDoctor:
		return true
	}
	return false
}

// BalanceField returns the employee balance the kind deducts from, or false
// for kinds that never touch a balance (unpaid, doctor).
func (k Kind) BalanceField() (employee.BalanceField, bool) {
	switch k {
	case KindPaid:
		return employee.BalancePaid, true
	case KindSick:
		return employee.BalanceSick, true
	case KindFamily:
		return employee.BalanceFamily, true
	}
	return "", false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request entity. Status transitions at most once, from pending to a
// terminal state.
type Request struct {
	ID         string
	TenantID   string
	EmployeeID string

	Kind      Kind
	StartDate time.Time
	EndDate   time.Time
	Days      int
	Reason    string
	Comment   *string

	Status        Status
	ReviewComment *string
	ReviewedBy    *string
	ReviewedAt    *time.Time

	// Balance days actually deducted at approval, after the zero floor.
	// Restored verbatim when an approved request is deleted.
	DeductedDays float64

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	EmployeeName *string
}
