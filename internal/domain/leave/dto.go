package leave

import (
	"time"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/pkg/validator"
)

var validKinds = []string{
	string(KindPaid), string(KindUnpaid), string(KindSick), string(KindFamily), string(KindDoctor),
}

type SubmitRequest struct {
	TenantID    string  `json:"-"`
	RequesterID string  `json:"-"`
	Kind        string  `json:"kind"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Days        int     `json:"days"`
	Reason      string  `json:"reason"`
	Comment     *string `json:"comment,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TenantID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tenant_id",
			Message: "tenant_id is required",
		})
	}

	if validator.IsEmpty(r.RequesterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "requester_id",
			Message: "requester_id is required",
		})
	}

	if !validator.IsInSlice(r.Kind, validKinds) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of paid, unpaid, sick, family, doctor",
		})
	}

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.Days < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be a positive integer",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed date range. Call Validate first.
func (r *SubmitRequest) Dates() (start, end time.Time) {
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	return start, end
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type DecideRequest struct {
	TenantID   string  `json:"-"`
	ReviewerID string  `json:"-"`
	RequestID  string  `json:"request_id"`
	Decision   string  `json:"decision"`
	Comment    *string `json:"comment,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TenantID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tenant_id",
			Message: "tenant_id is required",
		})
	}

	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id is required",
		})
	}

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.Decision != string(DecisionApprove) && r.Decision != string(DecisionReject) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EditRequest struct {
	TenantID  string  `json:"-"`
	ActorID   string  `json:"-"`
	RequestID string  `json:"-"`
	Kind      *string `json:"kind,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Days      *int    `json:"days,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *EditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.Kind != nil && !validator.IsInSlice(*r.Kind, validKinds) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of paid, unpaid, sick, family, doctor",
		})
	}

	var startDate, endDate time.Time
	startOK, endOK := false, false

	if r.StartDate != nil {
		startDate, startOK = validator.IsValidDate(*r.StartDate)
		if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.EndDate != nil {
		endDate, endOK = validator.IsValidDate(*r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.Days != nil && *r.Days < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be a positive integer",
		})
	}

	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not be empty",
		})
	}

	if r.Kind == nil && r.StartDate == nil && r.EndDate == nil && r.Days == nil && r.Reason == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "patch",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRequestPatch is the repository-level partial update.
type UpdateRequestPatch struct {
	ID        string
	Kind      *Kind
	StartDate *time.Time
	EndDate   *time.Time
	Days      *int
	Reason    *string
}

type RequestFilter struct {
	EmployeeID *string
	Status     *string
	Kind       *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type RequestResponse struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"tenant_id"`
	EmployeeID    string     `json:"employee_id"`
	EmployeeName  *string    `json:"employee_name,omitempty"`
	Kind          Kind       `json:"kind"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	Days          int        `json:"days"`
	Reason        string     `json:"reason"`
	Comment       *string    `json:"comment,omitempty"`
	Status        Status     `json:"status"`
	ReviewComment *string    `json:"review_comment,omitempty"`
	ReviewedBy    *string    `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
}

func ToRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		TenantID:      r.TenantID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		Kind:          r.Kind,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Days:          r.Days,
		Reason:        r.Reason,
		Comment:       r.Comment,
		Status:        r.Status,
		ReviewComment: r.ReviewComment,
		ReviewedBy:    r.ReviewedBy,
		ReviewedAt:    r.ReviewedAt,
		SubmittedAt:   r.SubmittedAt,
	}
}

type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int64             `json:"total"`
}

// PendingRequestSLA pairs a pending request with its live SLA state for the
// reviewer dashboard.
type PendingRequestSLA struct {
	Request RequestResponse `json:"request"`
	SLA     *sla.LiveSLA    `json:"sla,omitempty"`
}
