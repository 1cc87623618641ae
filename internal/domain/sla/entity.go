package sla

import "time"

// Defaults applied when a tenant has no persisted config.
const (
	DefaultTargetResponseHours    = 24.0
	DefaultWarningThresholdHours  = 18.0
	DefaultCriticalThresholdHours = 22.0
	DefaultBusinessStartHour      = 9
	DefaultBusinessEndHour        = 17
)

// Config is the per-tenant SLA policy, at most one active record per tenant.
type Config struct {
	ID       string
	TenantID string

	TargetResponseHours    float64
	WarningThresholdHours  float64
	CriticalThresholdHours float64

	BusinessHoursOnly bool
	BusinessStartHour int
	BusinessEndHour   int
	ExcludeWeekends   bool

	NotifyOnWarning  bool
	NotifyOnCritical bool
	NotifyOnBreach   bool

	UpdatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultConfig returns the documented defaults for a tenant with no
// persisted record. Reading defaults never creates a record.
func DefaultConfig(tenantID string) Config {
	return Config{
		TenantID:               tenantID,
		TargetResponseHours:    DefaultTargetResponseHours,
		WarningThresholdHours:  DefaultWarningThresholdHours,
		CriticalThresholdHours: DefaultCriticalThresholdHours,
		BusinessHoursOnly:      false,
		BusinessStartHour:      DefaultBusinessStartHour,
		BusinessEndHour:        DefaultBusinessEndHour,
		ExcludeWeekends:        false,
		NotifyOnWarning:        true,
		NotifyOnCritical:       true,
		NotifyOnBreach:         true,
	}
}

type MetricStatus string

const (
	MetricStatusPending  MetricStatus = "pending"
	MetricStatusOnTime   MetricStatus = "on_time"
	MetricStatusBreached MetricStatus = "breached"
)

// Metric is the one-to-one responsiveness shadow of a leave request. The
// tenant's SLA policy is frozen into the metric at creation, so a later
// config change never retroactively alters in-flight targets.
type Metric struct {
	ID        string
	TenantID  string
	RequestID string

	SubmittedAt time.Time

	// Policy snapshot, taken from the effective config at submission.
	TargetResponseHours    float64
	WarningThresholdHours  float64
	CriticalThresholdHours float64
	BusinessHoursOnly      bool
	BusinessStartHour      int
	BusinessEndHour        int
	ExcludeWeekends        bool

	// Set exactly once, at the reviewer decision.
	RespondedAt       *time.Time
	ResponseTimeHours *float64
	Score             *float64
	Status            MetricStatus

	WarningTriggered  bool
	CriticalTriggered bool
	BreachTriggered   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
