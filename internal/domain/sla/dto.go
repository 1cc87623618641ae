package sla

import (
	"time"

	"github.com/loomhr/leave-backend-go/internal/pkg/validator"
)

type UpdateConfigRequest struct {
	TenantID string `json:"-"`
	AdminID  string `json:"-"`

	TargetResponseHours    *float64 `json:"target_response_hours,omitempty"`
	WarningThresholdHours  *float64 `json:"warning_threshold_hours,omitempty"`
	CriticalThresholdHours *float64 `json:"critical_threshold_hours,omitempty"`
	BusinessHoursOnly      *bool    `json:"business_hours_only,omitempty"`
	BusinessStartHour      *int     `json:"business_start_hour,omitempty"`
	BusinessEndHour        *int     `json:"business_end_hour,omitempty"`
	ExcludeWeekends        *bool    `json:"exclude_weekends,omitempty"`
	NotifyOnWarning        *bool    `json:"notify_on_warning,omitempty"`
	NotifyOnCritical       *bool    `json:"notify_on_critical,omitempty"`
	NotifyOnBreach         *bool    `json:"notify_on_breach,omitempty"`
}

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TenantID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tenant_id",
			Message: "tenant_id is required",
		})
	}

	if r.TargetResponseHours != nil && *r.TargetResponseHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "target_response_hours",
			Message: "target_response_hours must be positive",
		})
	}

	if r.WarningThresholdHours != nil && *r.WarningThresholdHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "warning_threshold_hours",
			Message: "warning_threshold_hours must be positive",
		})
	}

	if r.CriticalThresholdHours != nil && *r.CriticalThresholdHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "critical_threshold_hours",
			Message: "critical_threshold_hours must be positive",
		})
	}

	if r.BusinessStartHour != nil && !validator.IsValidHour(*r.BusinessStartHour) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_start_hour",
			Message: "business_start_hour must be between 0 and 23",
		})
	}

	if r.BusinessEndHour != nil && !validator.IsValidHour(*r.BusinessEndHour) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_end_hour",
			Message: "business_end_hour must be between 0 and 23",
		})
	}

	if r.BusinessStartHour != nil && r.BusinessEndHour != nil && *r.BusinessEndHour <= *r.BusinessStartHour {
		errs = append(errs, validator.ValidationError{
			Field:   "business_end_hour",
			Message: "business_end_hour must be after business_start_hour",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LiveStatus is the four-state traffic light for pending metrics.
type LiveStatus string

const (
	LiveNormal   LiveStatus = "normal"
	LiveWarning  LiveStatus = "warning"
	LiveCritical LiveStatus = "critical"
	LiveBreached LiveStatus = "breached"
)

// LiveSLA is a non-persisted, recomputed-per-read view of a pending metric.
type LiveSLA struct {
	ElapsedHours    float64    `json:"elapsed_hours"`
	RemainingHours  float64    `json:"remaining_hours"`
	TargetHours     float64    `json:"target_hours"`
	ProgressPercent float64    `json:"progress_percent"`
	Status          LiveStatus `json:"status"`
}

type ConfigResponse struct {
	TenantID               string     `json:"tenant_id"`
	TargetResponseHours    float64    `json:"target_response_hours"`
	WarningThresholdHours  float64    `json:"warning_threshold_hours"`
	CriticalThresholdHours float64    `json:"critical_threshold_hours"`
	BusinessHoursOnly      bool       `json:"business_hours_only"`
	BusinessStartHour      int        `json:"business_start_hour"`
	BusinessEndHour        int        `json:"business_end_hour"`
	ExcludeWeekends        bool       `json:"exclude_weekends"`
	NotifyOnWarning        bool       `json:"notify_on_warning"`
	NotifyOnCritical       bool       `json:"notify_on_critical"`
	NotifyOnBreach         bool       `json:"notify_on_breach"`
	UpdatedBy              *string    `json:"updated_by,omitempty"`
	UpdatedAt              *time.Time `json:"updated_at,omitempty"`
}

func ToConfigResponse(c Config) ConfigResponse {
	resp := ConfigResponse{
		TenantID:               c.TenantID,
		TargetResponseHours:    c.TargetResponseHours,
		WarningThresholdHours:  c.WarningThresholdHours,
		CriticalThresholdHours: c.CriticalThresholdHours,
		BusinessHoursOnly:      c.BusinessHoursOnly,
		BusinessStartHour:      c.BusinessStartHour,
		BusinessEndHour:        c.BusinessEndHour,
		ExcludeWeekends:        c.ExcludeWeekends,
		NotifyOnWarning:        c.NotifyOnWarning,
		NotifyOnCritical:       c.NotifyOnCritical,
		NotifyOnBreach:         c.NotifyOnBreach,
		UpdatedBy:              c.UpdatedBy,
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// MetricResponse is the API view of a metric. Live is present only while the
// metric is pending.
type MetricResponse struct {
	ID        string `json:"id"`
	RequestID string `json:"request_id"`

	SubmittedAt time.Time `json:"submitted_at"`

	TargetResponseHours    float64 `json:"target_response_hours"`
	WarningThresholdHours  float64 `json:"warning_threshold_hours"`
	CriticalThresholdHours float64 `json:"critical_threshold_hours"`
	BusinessHoursOnly      bool    `json:"business_hours_only"`

	RespondedAt       *time.Time   `json:"responded_at,omitempty"`
	ResponseTimeHours *float64     `json:"response_time_hours,omitempty"`
	Score             *float64     `json:"score,omitempty"`
	Status            MetricStatus `json:"status"`

	Live *LiveSLA `json:"live,omitempty"`
}

func ToMetricResponse(m Metric, live *LiveSLA) MetricResponse {
	return MetricResponse{
		ID:                     m.ID,
		RequestID:              m.RequestID,
		SubmittedAt:            m.SubmittedAt,
		TargetResponseHours:    m.TargetResponseHours,
		WarningThresholdHours:  m.WarningThresholdHours,
		CriticalThresholdHours: m.CriticalThresholdHours,
		BusinessHoursOnly:      m.BusinessHoursOnly,
		RespondedAt:            m.RespondedAt,
		ResponseTimeHours:      m.ResponseTimeHours,
		Score:                  m.Score,
		Status:                 m.Status,
		Live:                   live,
	}
}

// StatsWindow filters completed metrics by decision time. Zero values mean
// unbounded.
type StatsWindow struct {
	From time.Time
	To   time.Time
}

type Stats struct {
	Total                int     `json:"total"`
	Pending              int     `json:"pending"`
	OnTime               int     `json:"on_time"`
	Breached             int     `json:"breached"`
	AvgResponseTimeHours float64 `json:"avg_response_time_hours"`
	AvgScore             float64 `json:"avg_sla_score"`
	ComplianceRate       float64 `json:"compliance_rate"`
	WarningCount         int     `json:"warning_count"`
	CriticalCount        int     `json:"critical_count"`
}

// TrendPoint is one calendar day of completed metrics.
type TrendPoint struct {
	Date                 string  `json:"date"`
	OnTime               int     `json:"on_time"`
	Breached             int     `json:"breached"`
	AvgResponseTimeHours float64 `json:"avg_response_time_hours"`
}
