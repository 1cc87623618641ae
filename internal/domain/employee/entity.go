package employee

import "time"

// Employee entity. Balances are mutated only by the leave lifecycle; the
// performance/attendance/behavior records are read-only inputs to scoring,
// maintained by external collaborators.
type Employee struct {
	ID       string
	UserID   string
	TenantID string
	FullName string

	PaidLeaveBalance   float64
	SickLeaveBalance   float64
	FamilyLeaveBalance float64

	// Annual allowance used for leave-history utilization scoring.
	AnnualLeaveAllowance float64

	// Optional 1-5 rating by the direct supervisor.
	SupervisorRating *float64

	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BalanceField names a deductible balance column.
type BalanceField string

const (
	BalancePaid   BalanceField = "paid_leave_balance"
	BalanceSick   BalanceField = "sick_leave_balance"
	BalanceFamily BalanceField = "family_leave_balance"
)

// PerformanceMetrics is the aggregated performance record for one employee.
type PerformanceMetrics struct {
	EmployeeID string

	KPIScore              float64 // 0-5 scale
	ProjectCompletionRate float64 // percent
	DeadlineAdherenceRate float64 // percent

	// Fallback attendance signals when no time-tracking sample exists.
	PunctualityScore float64 // percent
	AbsenceRate      float64 // percent
	LateArrivals     int

	UpdatedAt time.Time
}

// TimeTrackingSummary aggregates real clock-in records over a sample window.
type TimeTrackingSummary struct {
	EmployeeID string

	TotalDays   int
	LateDays    int
	AbsentDays  int
	EarlyLeaves int

	WindowStart time.Time
	WindowEnd   time.Time
}

type NoteSentiment string

const (
	SentimentPositive NoteSentiment = "positive"
	SentimentNeutral  NoteSentiment = "neutral"
	SentimentNegative NoteSentiment = "negative"
)

// BehaviorNote is a manager note with sentiment classification.
type BehaviorNote struct {
	ID         string
	EmployeeID string
	Sentiment  NoteSentiment
	Note       string
	CreatedBy  string
	CreatedAt  time.Time
}
