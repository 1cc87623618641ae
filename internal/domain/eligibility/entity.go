package eligibility

type Recommendation string

const (
	RecommendApprove Recommendation = "APPROVE"
	RecommendReview  Recommendation = "REVIEW"
	RecommendReject  Recommendation = "REJECT"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Score is a point-in-time computed result. It is never persisted; every
// query recomputes it from current employee data.
type Score struct {
	Overall float64 `json:"overall"`

	Performance  float64  `json:"performance"`
	Attendance   float64  `json:"attendance"`
	Behavior     float64  `json:"behavior"`
	LeaveHistory float64  `json:"leave_history"`
	Workload     *float64 `json:"workload,omitempty"`

	Recommendation Recommendation `json:"recommendation"`
	Confidence     Confidence     `json:"confidence"`

	// Human-readable explainability strings, deterministic for equal inputs.
	Factors []string `json:"factors"`
}
