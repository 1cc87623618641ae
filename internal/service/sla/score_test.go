package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
)

func TestComputeScoreOnTime(t *testing.T) {
	// 10h against a 24h target: 100 - (10/24)*20 = 91.67.
	score, status := ComputeScore(10, 24)

	assert.Equal(t, sla.MetricStatusOnTime, status)
	assert.InDelta(t, 91.67, score, 0.01)
}

func TestComputeScoreExactlyAtTarget(t *testing.T) {
	score, status := ComputeScore(24, 24)

	assert.Equal(t, sla.MetricStatusOnTime, status)
	assert.Equal(t, 80.0, score)
}

func TestComputeScoreFastResponseCapsAt100(t *testing.T) {
	score, status := ComputeScore(0, 24)

	assert.Equal(t, sla.MetricStatusOnTime, status)
	assert.Equal(t, 100.0, score)
}

func TestComputeScoreBreach(t *testing.T) {
	// 48h against 24h: overage ratio 1.0, penalty 40, score 39.
	score, status := ComputeScore(48, 24)

	assert.Equal(t, sla.MetricStatusBreached, status)
	assert.InDelta(t, 39, score, 0.01)
}

func TestComputeScoreSevereBreachFloorsAtZero(t *testing.T) {
	score, status := ComputeScore(240, 24)

	assert.Equal(t, sla.MetricStatusBreached, status)
	assert.Equal(t, 0.0, score)
}

func TestComputeScoreBreachNeverReaches80(t *testing.T) {
	// Just over target: score starts at 79, strictly below the on-time floor.
	score, status := ComputeScore(24.001, 24)

	assert.Equal(t, sla.MetricStatusBreached, status)
	assert.Less(t, score, 80.0)
}

func TestLiveStatusTransitions(t *testing.T) {
	metric := sla.Metric{
		SubmittedAt:            time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		TargetResponseHours:    24,
		WarningThresholdHours:  18,
		CriticalThresholdHours: 22,
		Status:                 sla.MetricStatusPending,
	}

	cases := []struct {
		hours float64
		want  sla.LiveStatus
	}{
		{1, sla.LiveNormal},
		{17.9, sla.LiveNormal},
		{18, sla.LiveWarning},
		{21.9, sla.LiveWarning},
		{22, sla.LiveCritical},
		{24, sla.LiveCritical},
		{24.1, sla.LiveBreached},
	}

	for _, c := range cases {
		now := metric.SubmittedAt.Add(time.Duration(c.hours * float64(time.Hour)))
		live := Live(metric, now)
		assert.Equal(t, c.want, live.Status, "at %.1f elapsed hours", c.hours)
	}
}

func TestLiveIsIdempotent(t *testing.T) {
	metric := sla.Metric{
		SubmittedAt:            time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
		TargetResponseHours:    24,
		WarningThresholdHours:  18,
		CriticalThresholdHours: 22,
		Status:                 sla.MetricStatusPending,
	}

	now := metric.SubmittedAt.Add(10 * time.Hour)

	first := Live(metric, now)
	second := Live(metric, now)

	assert.Equal(t, first, second)
}

func TestLiveRemainingFloorsAtZero(t *testing.T) {
	metric := sla.Metric{
		SubmittedAt:         time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
		TargetResponseHours: 24,
	}

	live := Live(metric, metric.SubmittedAt.Add(30*time.Hour))

	assert.Equal(t, 0.0, live.RemainingHours)
	assert.Equal(t, 100.0, live.ProgressPercent)
}
