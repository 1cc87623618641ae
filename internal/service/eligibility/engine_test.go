package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomhr/leave-backend-go/internal/domain/eligibility"
	"github.com/loomhr/leave-backend-go/internal/domain/employee"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestEvaluateStrongProfile(t *testing.T) {
	in := Input{
		Metrics: &employee.PerformanceMetrics{
			KPIScore:              5,
			ProjectCompletionRate: 100,
			DeadlineAdherenceRate: 100,
		},
		TimeTracking: &employee.TimeTrackingSummary{
			TotalDays: 20,
		},
		Notes: []employee.BehaviorNote{
			{Sentiment: employee.SentimentPositive},
			{Sentiment: employee.SentimentPositive},
		},
		AnnualAllowance: 20,
		UsedLeaveDays:   12,
		OverlapCount:    intPtr(0),
	}

	score := Evaluate(in)

	assert.Equal(t, 100.0, score.Performance)
	assert.Equal(t, 90.0, score.Attendance)
	assert.Equal(t, 100.0, score.Behavior)
	assert.Equal(t, 100.0, score.LeaveHistory)
	assert.Equal(t, 100.0, *score.Workload)
	assert.InDelta(t, 98, score.Overall, 0.01)
	assert.Equal(t, eligibility.RecommendApprove, score.Recommendation)
	assert.Equal(t, eligibility.ConfidenceHigh, score.Confidence)
	assert.NotEmpty(t, score.Factors)
}

func TestEvaluateNoDataFallsBackToNeutralDefaults(t *testing.T) {
	score := Evaluate(Input{})

	assert.Equal(t, 50.0, score.Performance)
	assert.Equal(t, 70.0, score.Attendance)
	assert.Equal(t, 75.0, score.Behavior)
	assert.Equal(t, 70.0, score.LeaveHistory)
	assert.Nil(t, score.Workload)
	// .35*50 + .25*70 + .25*75 + .15*70
	assert.InDelta(t, 64.25, score.Overall, 0.01)
	assert.Equal(t, eligibility.RecommendApprove, score.Recommendation)
	assert.Equal(t, eligibility.ConfidenceMedium, score.Confidence)
}

func TestEvaluateSupervisorRatingReplacesBehavior(t *testing.T) {
	score := Evaluate(Input{SupervisorRating: floatPtr(4)})

	// Performance falls back to the rating, and the rating also takes the
	// behavior slot in the weighted overall.
	assert.Equal(t, 80.0, score.Performance)
	// .30*80 + .30*70 + .25*80 + .15*70
	assert.InDelta(t, 75.5, score.Overall, 0.01)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	in := Input{
		SupervisorRating: floatPtr(3.5),
		AnnualAllowance:  20,
		UsedLeaveDays:    5,
		OverlapCount:     intPtr(1),
	}

	first := Evaluate(in)
	second := Evaluate(in)

	assert.Equal(t, first, second)
}

func TestAttendanceFallsBackToPerformanceSignals(t *testing.T) {
	m := &employee.PerformanceMetrics{
		PunctualityScore: 90,
		AbsenceRate:      2,
		LateArrivals:     3,
	}

	score, factors := attendanceScore(nil, m)

	// 90 - 2*5 - 3*2
	assert.Equal(t, 74.0, score)
	assert.Len(t, factors, 3)
}

func TestAttendanceEarlyLeaveDeductionIsCapped(t *testing.T) {
	tt := &employee.TimeTrackingSummary{
		TotalDays:   20,
		EarlyLeaves: 10,
	}

	score, _ := attendanceScore(tt, nil)

	// 60 + 30 - min(10, 20)
	assert.Equal(t, 80.0, score)
}

func TestBehaviorScoreMixedSentiments(t *testing.T) {
	notes := []employee.BehaviorNote{
		{Sentiment: employee.SentimentPositive},
		{Sentiment: employee.SentimentPositive},
		{Sentiment: employee.SentimentNeutral},
		{Sentiment: employee.SentimentNegative},
	}

	score, _ := behaviorScore(notes)

	// (200 + 75 - 50) / 4
	assert.InDelta(t, 56.25, score, 0.001)
}

func TestLeaveHistoryBuckets(t *testing.T) {
	cases := []struct {
		used float64
		want float64
	}{
		{12, 100}, // 60%: healthy band
		{2, 70},   // 10%: burnout-risk signal
		{19, 60},  // 95%: nearly exhausted
		{8, 85},   // 40%: moderate
	}

	for _, c := range cases {
		score, _ := leaveHistoryScore(c.used, 20)
		assert.Equal(t, c.want, score, "used %.0f of 20", c.used)
	}
}

func TestWorkloadBuckets(t *testing.T) {
	cases := []struct {
		overlap int
		want    float64
	}{
		{0, 100},
		{1, 85},
		{2, 70},
		{3, 50},
		{7, 50},
	}

	for _, c := range cases {
		score, _ := workloadScore(c.overlap)
		assert.Equal(t, c.want, score, "overlap %d", c.overlap)
	}
}

func TestRecommendThresholds(t *testing.T) {
	cases := []struct {
		overall        float64
		recommendation eligibility.Recommendation
		confidence     eligibility.Confidence
	}{
		{95, eligibility.RecommendApprove, eligibility.ConfidenceHigh},
		{80, eligibility.RecommendApprove, eligibility.ConfidenceHigh},
		{79.9, eligibility.RecommendApprove, eligibility.ConfidenceMedium},
		{60, eligibility.RecommendApprove, eligibility.ConfidenceMedium},
		{59.9, eligibility.RecommendReview, eligibility.ConfidenceMedium},
		{40, eligibility.RecommendReview, eligibility.ConfidenceMedium},
		{39.9, eligibility.RecommendReject, eligibility.ConfidenceLow},
	}

	for _, c := range cases {
		rec, conf := recommend(c.overall)
		assert.Equal(t, c.recommendation, rec, "overall %.1f", c.overall)
		assert.Equal(t, c.confidence, conf, "overall %.1f", c.overall)
	}
}
