package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/loomhr/leave-backend-go/internal/domain/employee"
	"github.com/loomhr/leave-backend-go/internal/domain/leave"
	"github.com/loomhr/leave-backend-go/internal/domain/notification"
	"github.com/loomhr/leave-backend-go/internal/domain/user"
	"github.com/loomhr/leave-backend-go/internal/pkg/validator"
	slaService "github.com/loomhr/leave-backend-go/internal/service/sla"
)

// TxRunner executes fn atomically. The postgres implementation wraps a
// database transaction; tests substitute a passthrough.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Passthrough is a TxRunner without transactional guarantees, for callers
// backed by stores that do not support them.
func Passthrough(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Service drives the request lifecycle: submit, decide, edit, delete. Every
// state change keeps the request's SLA metric and employee balances in step.
type Service struct {
	requestRepo     leave.RequestRepository
	employeeRepo    employee.Repository
	userRepo        user.Repository
	tracker         *slaService.TrackerService
	notificationSvc notification.Service
	tx              TxRunner
	now             func() time.Time
}

var _ leave.Service = (*Service)(nil)

func NewService(
	requestRepo leave.RequestRepository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	tracker *slaService.TrackerService,
	notificationSvc notification.Service,
	tx TxRunner,
) *Service {
	return &Service{
		requestRepo:     requestRepo,
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		tracker:         tracker,
		notificationSvc: notificationSvc,
		tx:              tx,
		now:             time.Now,
	}
}

// Submit creates a pending request and its SLA metric atomically, then
// notifies the tenant's reviewers.
func (s *Service) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	actor, err := s.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if actor.TenantID != req.TenantID {
		return leave.RequestResponse{}, user.ErrTenantMismatch
	}
	if actor.Status != user.AccountStatusApproved {
		return leave.RequestResponse{}, user.ErrAccountNotApproved
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, req.RequesterID)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	start, end := req.Dates()
	now := s.now()

	request := leave.Request{
		ID:          uuid.New().String(),
		TenantID:    req.TenantID,
		EmployeeID:  emp.ID,
		Kind:        leave.Kind(req.Kind),
		StartDate:   start,
		EndDate:     end,
		Days:        req.Days,
		Reason:      req.Reason,
		Comment:     req.Comment,
		Status:      leave.StatusPending,
		SubmittedAt: now,
	}

	var created leave.Request
	err = s.tx(ctx, func(ctx context.Context) error {
		created, err = s.requestRepo.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		if _, err := s.tracker.CreateMetric(ctx, req.TenantID, created.ID, now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.notifyReviewers(ctx, created, actor.ID)

	return leave.ToRequestResponse(created), nil
}

// Decide moves a pending request to approved or rejected. The status change
// is a compare-and-swap so two racing reviewers can never both win; the
// loser gets ErrAlreadyReviewed and nothing else changes. Approval deducts
// the employee's balance for deductible kinds, and the SLA metric is
// finalized in the same transaction.
func (s *Service) Decide(ctx context.Context, req leave.DecideRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	reviewer, err := s.userRepo.GetByID(ctx, req.ReviewerID)
	if err != nil {
		return err
	}
	if reviewer.TenantID != req.TenantID {
		return user.ErrTenantMismatch
	}
	if !reviewer.Role.CanReview() {
		return user.ErrReviewerRequired
	}
	if reviewer.Status != user.AccountStatusApproved {
		return user.ErrAccountNotApproved
	}

	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if request.TenantID != req.TenantID {
		return leave.ErrRequestNotFound
	}
	if request.Status != leave.StatusPending {
		return leave.ErrAlreadyReviewed
	}

	status := leave.StatusRejected
	if req.Decision == string(leave.DecisionApprove) {
		status = leave.StatusApproved
	}
	reviewedAt := s.now()

	err = s.tx(ctx, func(ctx context.Context) error {
		won, err := s.requestRepo.Decide(ctx, request.ID, status, req.ReviewerID, req.Comment, reviewedAt)
		if err != nil {
			return fmt.Errorf("failed to decide leave request: %w", err)
		}
		if !won {
			return leave.ErrAlreadyReviewed
		}

		if status == leave.StatusApproved {
			if field, ok := request.Kind.BalanceField(); ok {
				applied, err := s.employeeRepo.AdjustBalance(ctx, request.EmployeeID, field, -float64(request.Days))
				if err != nil {
					return fmt.Errorf("failed to deduct leave balance: %w", err)
				}
				// The zero floor may clamp the deduction; record what was
				// actually taken so deletion restores exactly that.
				if err := s.requestRepo.SetDeductedDays(ctx, request.ID, -applied); err != nil {
					return fmt.Errorf("failed to record deducted days: %w", err)
				}
			}
		}

		if _, err := s.tracker.FinalizeMetric(ctx, request.ID, reviewedAt); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyRequester(ctx, request, status, req.ReviewerID)

	return nil
}

// Edit patches a request's fields. Owners may edit only while the request is
// pending; admins may edit regardless of status.
func (s *Service) Edit(ctx context.Context, req leave.EditRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	actor, err := s.userRepo.GetByID(ctx, req.ActorID)
	if err != nil {
		return err
	}
	if actor.TenantID != req.TenantID {
		return user.ErrTenantMismatch
	}

	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if request.TenantID != req.TenantID {
		return leave.ErrRequestNotFound
	}

	isOwner, err := s.isOwner(ctx, actor.ID, request)
	if err != nil {
		return err
	}
	if !actor.Role.IsAdmin() {
		if !isOwner {
			return leave.ErrNotRequestOwner
		}
		if request.Status != leave.StatusPending {
			return leave.ErrEditNotAllowed
		}
	}

	patch, err := buildPatch(request, req)
	if err != nil {
		return err
	}

	if err := s.requestRepo.Update(ctx, patch); err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	// Admin edits of someone else's request notify the owner.
	if actor.Role.IsAdmin() && !isOwner {
		s.notifyOwner(ctx, request, notification.TypeLeaveUpdated,
			"Leave request updated", "Your leave request was updated by an administrator.", actor.ID)
	}

	return nil
}

// Delete removes a request. Owners may delete only while pending; admins may
// delete regardless of status. Deleting an approved request restores the
// deducted balance, and the SLA metric goes with the request.
func (s *Service) Delete(ctx context.Context, tenantID, actorID, requestID string) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.TenantID != tenantID {
		return user.ErrTenantMismatch
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.TenantID != tenantID {
		return leave.ErrRequestNotFound
	}

	isOwner, err := s.isOwner(ctx, actor.ID, request)
	if err != nil {
		return err
	}
	if !actor.Role.IsAdmin() {
		if !isOwner {
			return leave.ErrNotRequestOwner
		}
		if request.Status != leave.StatusPending {
			return leave.ErrDeleteNotAllowed
		}
	}

	return s.tx(ctx, func(ctx context.Context) error {
		if request.Status == leave.StatusApproved && request.DeductedDays > 0 {
			if field, ok := request.Kind.BalanceField(); ok {
				if _, err := s.employeeRepo.AdjustBalance(ctx, request.EmployeeID, field, request.DeductedDays); err != nil {
					return fmt.Errorf("failed to restore leave balance: %w", err)
				}
			}
		}

		if err := s.tracker.DeleteMetric(ctx, request.ID); err != nil {
			return fmt.Errorf("failed to delete SLA metric: %w", err)
		}

		if err := s.requestRepo.Delete(ctx, request.ID); err != nil {
			return fmt.Errorf("failed to delete leave request: %w", err)
		}
		return nil
	})
}

func (s *Service) GetRequest(ctx context.Context, tenantID, requestID string) (leave.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.TenantID != tenantID {
		return leave.RequestResponse{}, leave.ErrRequestNotFound
	}
	return leave.ToRequestResponse(request), nil
}

func (s *Service) ListRequests(ctx context.Context, tenantID string, filter leave.RequestFilter) (leave.ListRequestsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.requestRepo.ListByTenant(ctx, tenantID, filter)
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = leave.ToRequestResponse(r)
	}

	return leave.ListRequestsResponse{
		Requests: responses,
		Total:    total,
	}, nil
}

// ListPendingWithSLA joins pending requests with their live SLA state. A
// request without a metric still lists, just without SLA data.
func (s *Service) ListPendingWithSLA(ctx context.Context, tenantID string) ([]leave.PendingRequestSLA, error) {
	requests, err := s.requestRepo.ListPendingByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	metrics, err := s.tracker.PendingByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]leave.PendingRequestSLA, len(requests))
	for i, r := range requests {
		items[i] = leave.PendingRequestSLA{Request: leave.ToRequestResponse(r)}
		if m, ok := metrics[r.ID]; ok {
			live := slaService.Live(m, now)
			items[i].SLA = &live
		}
	}

	return items, nil
}

func (s *Service) isOwner(ctx context.Context, userID string, request leave.Request) (bool, error) {
	emp, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return false, nil
		}
		return false, err
	}
	return emp.ID == request.EmployeeID, nil
}

// buildPatch merges the edit into a partial update, validating that the
// resulting date range stays ordered.
func buildPatch(current leave.Request, req leave.EditRequest) (leave.UpdateRequestPatch, error) {
	patch := leave.UpdateRequestPatch{
		ID:     current.ID,
		Days:   req.Days,
		Reason: req.Reason,
	}

	if req.Kind != nil {
		kind := leave.Kind(*req.Kind)
		patch.Kind = &kind
	}

	start, end := current.StartDate, current.EndDate
	if req.StartDate != nil {
		parsed, _ := validator.IsValidDate(*req.StartDate)
		start = parsed
		patch.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, _ := validator.IsValidDate(*req.EndDate)
		end = parsed
		patch.EndDate = &parsed
	}

	if end.Before(start) {
		return leave.UpdateRequestPatch{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}

	return patch, nil
}

func (s *Service) notifyReviewers(ctx context.Context, request leave.Request, requesterID string) {
	reviewers, err := s.userRepo.ListReviewers(ctx, request.TenantID)
	if err != nil {
		slog.Error("Failed to list reviewers for notification", "tenant_id", request.TenantID, "error", err)
		return
	}

	requestID := request.ID
	senderID := requesterID
	reqs := make([]notification.CreateNotificationRequest, 0, len(reviewers))
	for _, reviewer := range reviewers {
		if reviewer.ID == requesterID {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			TenantID:    request.TenantID,
			RecipientID: reviewer.ID,
			SenderID:    &senderID,
			Type:        notification.TypeLeaveSubmitted,
			Title:       "New leave request",
			Message:     fmt.Sprintf("A %s leave request for %d day(s) is awaiting review.", request.Kind, request.Days),
			RelatedID:   &requestID,
		})
	}

	if err := s.notificationSvc.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("Failed to queue reviewer notifications", "request_id", request.ID, "error", err)
	}
}

func (s *Service) notifyRequester(ctx context.Context, request leave.Request, status leave.Status, reviewerID string) {
	notifType := notification.TypeLeaveRejected
	title := "Leave request rejected"
	if status == leave.StatusApproved {
		notifType = notification.TypeLeaveApproved
		title = "Leave request approved"
	}

	s.notifyOwner(ctx, request, notifType, title,
		fmt.Sprintf("Your %s leave request for %d day(s) was %s.", request.Kind, request.Days, status), reviewerID)
}

func (s *Service) notifyOwner(ctx context.Context, request leave.Request, notifType notification.Type, title, message, senderID string) {
	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		slog.Error("Failed to resolve request owner for notification", "request_id", request.ID, "error", err)
		return
	}

	requestID := request.ID
	sender := senderID
	err = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		TenantID:    request.TenantID,
		RecipientID: emp.UserID,
		SenderID:    &sender,
		Type:        notifType,
		Title:       title,
		Message:     message,
		RelatedID:   &requestID,
	})
	if err != nil {
		slog.Error("Failed to queue owner notification", "request_id", request.ID, "error", err)
	}
}
