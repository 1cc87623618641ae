package eligibility

import (
	"fmt"
	"math"

	"github.com/loomhr/leave-backend-go/internal/domain/eligibility"
	"github.com/loomhr/leave-backend-go/internal/domain/employee"
)

// Input carries everything the engine needs, already resolved from the
// read-only collaborator stores. Nil/absent fields fall back to the
// documented neutral defaults.
type Input struct {
	Metrics          *employee.PerformanceMetrics
	SupervisorRating *float64
	TimeTracking     *employee.TimeTrackingSummary
	Notes            []employee.BehaviorNote

	AnnualAllowance float64
	UsedLeaveDays   float64

	// Number of other approved-or-pending team leaves overlapping the
	// requested range. Nil for a general employee evaluation.
	OverlapCount *int
}

// Evaluate computes the weighted eligibility score. Pure and deterministic:
// equal inputs always produce the same score and factor strings.
func Evaluate(in Input) eligibility.Score {
	perf, perfFactors := performanceScore(in.Metrics, in.SupervisorRating)
	att, attFactors := attendanceScore(in.TimeTracking, in.Metrics)
	beh, behFactors := behaviorScore(in.Notes)
	hist, histFactors := leaveHistoryScore(in.UsedLeaveDays, in.AnnualAllowance)

	score := eligibility.Score{
		Performance:  perf,
		Attendance:   att,
		Behavior:     beh,
		LeaveHistory: hist,
	}

	factors := make([]string, 0, 12)
	factors = append(factors, perfFactors...)
	factors = append(factors, attFactors...)
	factors = append(factors, behFactors...)
	factors = append(factors, histFactors...)

	var overall float64
	if in.OverlapCount != nil {
		work, workFactors := workloadScore(*in.OverlapCount)
		score.Workload = &work
		factors = append(factors, workFactors...)

		overall = perf*0.30 + att*0.20 + beh*0.20 + hist*0.15 + work*0.15
	} else if in.SupervisorRating != nil {
		// Supervisor rating replaces the behavior factor for general scores.
		supervisor := clamp(*in.SupervisorRating * 20)
		factors = append(factors, fmt.Sprintf("Supervisor rating %.1f/5", *in.SupervisorRating))

		overall = perf*0.30 + att*0.30 + supervisor*0.25 + hist*0.15
	} else {
		overall = perf*0.35 + att*0.25 + beh*0.25 + hist*0.15
	}

	score.Overall = round2(clamp(overall))
	score.Recommendation, score.Confidence = recommend(score.Overall)
	score.Factors = factors

	return score
}

func recommend(overall float64) (eligibility.Recommendation, eligibility.Confidence) {
	switch {
	case overall >= 80:
		return eligibility.RecommendApprove, eligibility.ConfidenceHigh
	case overall >= 60:
		return eligibility.RecommendApprove, eligibility.ConfidenceMedium
	case overall >= 40:
		return eligibility.RecommendReview, eligibility.ConfidenceMedium
	default:
		return eligibility.RecommendReject, eligibility.ConfidenceLow
	}
}

// performanceScore averages KPI, project completion and deadline adherence.
// Without metrics it falls back to the supervisor rating, else a neutral 50.
func performanceScore(m *employee.PerformanceMetrics, supervisorRating *float64) (float64, []string) {
	if m == nil {
		if supervisorRating != nil {
			score := clamp(*supervisorRating * 20)
			return score, []string{
				"No performance metrics recorded",
				fmt.Sprintf("Using supervisor rating %.1f/5", *supervisorRating),
			}
		}
		return 50, []string{
			"No performance metrics recorded",
			"Using neutral performance default",
		}
	}

	kpi := clamp(m.KPIScore * 20)
	completion := clamp(m.ProjectCompletionRate)
	adherence := clamp(m.DeadlineAdherenceRate)
	score := clamp((kpi + completion + adherence) / 3)

	return score, []string{
		fmt.Sprintf("KPI score %.1f/5", m.KPIScore),
		fmt.Sprintf("Project completion %.0f%%", completion),
		fmt.Sprintf("Deadline adherence %.0f%%", adherence),
	}
}

// attendanceScore prefers real time-tracking records, falls back to the
// metrics-derived formula, else a neutral 70.
func attendanceScore(tt *employee.TimeTrackingSummary, m *employee.PerformanceMetrics) (float64, []string) {
	if tt != nil && tt.TotalDays > 0 {
		punctuality := float64(tt.TotalDays-tt.LateDays) / float64(tt.TotalDays) * 100
		attendance := float64(tt.TotalDays-tt.AbsentDays) / float64(tt.TotalDays) * 100

		earlyDeduction := float64(tt.EarlyLeaves) * 2
		if earlyDeduction > 10 {
			earlyDeduction = 10
		}

		score := clamp(punctuality*0.6 + attendance*0.3 - earlyDeduction)
		return score, []string{
			fmt.Sprintf("Punctuality rate %.0f%% over %d tracked days", punctuality, tt.TotalDays),
			fmt.Sprintf("Attendance rate %.0f%%", attendance),
			fmt.Sprintf("%d early leaves", tt.EarlyLeaves),
		}
	}

	if m != nil {
		score := clamp(m.PunctualityScore - m.AbsenceRate*5 - float64(m.LateArrivals)*2)
		return score, []string{
			fmt.Sprintf("Punctuality score %.0f%% from performance record", m.PunctualityScore),
			fmt.Sprintf("Absence rate %.1f%%", m.AbsenceRate),
			fmt.Sprintf("%d late arrivals", m.LateArrivals),
		}
	}

	return 70, []string{
		"No attendance records available",
		"Using neutral attendance default",
	}
}

// behaviorScore derives from manager note sentiment counts, defaulting to 75
// when no notes exist.
func behaviorScore(notes []employee.BehaviorNote) (float64, []string) {
	if len(notes) == 0 {
		return 75, []string{
			"No manager notes recorded",
			"Using neutral behavior default",
		}
	}

	var positive, neutral, negative int
	for _, n := range notes {
		switch n.Sentiment {
		case employee.SentimentPositive:
			positive++
		case employee.SentimentNegative:
			negative++
		default:
			neutral++
		}
	}

	total := float64(len(notes))
	score := clamp((float64(positive)*100 + float64(neutral)*75 - float64(negative)*50) / total)

	return score, []string{
		fmt.Sprintf("%d positive, %d neutral, %d negative manager notes", positive, neutral, negative),
		fmt.Sprintf("Behavior score derived from %d notes", len(notes)),
	}
}

// leaveHistoryScore rewards the 50-75%% utilization sweet spot; very low
// utilization is a burnout-risk signal, very high an over-utilization one.
func leaveHistoryScore(usedDays, allowance float64) (float64, []string) {
	if allowance <= 0 {
		return 70, []string{
			"No annual leave allowance configured",
			"Using neutral leave-history default",
		}
	}

	utilization := usedDays / allowance * 100
	usage := fmt.Sprintf("Used %.1f of %.0f annual leave days (%.0f%%)", usedDays, allowance, utilization)

	switch {
	case utilization >= 50 && utilization <= 75:
		return 100, []string{usage, "Healthy leave utilization"}
	case utilization < 25:
		return 70, []string{usage, "Low utilization, burnout-risk signal"}
	case utilization > 90:
		return 60, []string{usage, "High utilization, balance nearly exhausted"}
	default:
		return 85, []string{usage, "Moderate leave utilization"}
	}
}

// workloadScore penalizes overlapping team absences in the requested range.
func workloadScore(overlap int) (float64, []string) {
	var score float64
	switch {
	case overlap == 0:
		score = 100
	case overlap == 1:
		score = 85
	case overlap == 2:
		score = 70
	default:
		score = 50
	}

	return score, []string{
		fmt.Sprintf("%d overlapping team leaves in requested range", overlap),
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
