package sla

import (
	"time"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/pkg/businesshours"
)

// ComputeScore maps a response time against its target to a 0-100 compliance
// score. On-time responses score in [80,100], scaling down linearly as they
// approach the deadline. Breached responses score in [0,79], decaying with
// the overage ratio and floored at zero.
func ComputeScore(responseHours, targetHours float64) (float64, sla.MetricStatus) {
	if responseHours <= targetHours {
		score := 100 - (responseHours/targetHours)*20
		if score < 80 {
			score = 80
		}
		return score, sla.MetricStatusOnTime
	}

	overageRatio := (responseHours - targetHours) / targetHours
	penalty := overageRatio * 40
	if penalty > 79 {
		penalty = 79
	}
	score := 79 - penalty
	if score < 0 {
		score = 0
	}
	return score, sla.MetricStatusBreached
}

// policyConfig converts the metric's frozen policy snapshot into a
// business-hours config.
func policyConfig(m sla.Metric) businesshours.Config {
	return businesshours.Config{
		BusinessHoursOnly: m.BusinessHoursOnly,
		StartHour:         m.BusinessStartHour,
		EndHour:           m.BusinessEndHour,
		ExcludeWeekends:   m.ExcludeWeekends,
	}
}

// Live computes the non-persisted dashboard view of a pending metric at now.
// Pure: calling it twice with the same now yields identical output.
func Live(m sla.Metric, now time.Time) sla.LiveSLA {
	elapsed := businesshours.Elapsed(m.SubmittedAt, now, policyConfig(m))

	remaining := m.TargetResponseHours - elapsed
	if remaining < 0 {
		remaining = 0
	}

	progress := 0.0
	if m.TargetResponseHours > 0 {
		progress = elapsed / m.TargetResponseHours * 100
	}
	if progress > 100 {
		progress = 100
	}

	status := sla.LiveNormal
	switch {
	case elapsed > m.TargetResponseHours:
		status = sla.LiveBreached
	case elapsed >= m.CriticalThresholdHours:
		status = sla.LiveCritical
	case elapsed >= m.WarningThresholdHours:
		status = sla.LiveWarning
	}

	return sla.LiveSLA{
		ElapsedHours:    elapsed,
		RemainingHours:  remaining,
		TargetHours:     m.TargetResponseHours,
		ProgressPercent: progress,
		Status:          status,
	}
}
