package eligibility

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loomhr/leave-backend-go/internal/domain/eligibility"
	"github.com/loomhr/leave-backend-go/internal/domain/employee"
	"github.com/loomhr/leave-backend-go/internal/domain/leave"
	"github.com/loomhr/leave-backend-go/internal/domain/user"
)

// Service resolves the scoring inputs from the read-only collaborator stores
// and delegates the math to the pure engine. Scores are never persisted.
type Service struct {
	employeeRepo    employee.Repository
	performanceRepo employee.PerformanceRepository
	timeTrackRepo   employee.TimeTrackingRepository
	behaviorRepo    employee.BehaviorNoteRepository
	leaveRepo       leave.RequestRepository
	now             func() time.Time
}

var _ eligibility.Service = (*Service)(nil)

func NewService(
	employeeRepo employee.Repository,
	performanceRepo employee.PerformanceRepository,
	timeTrackRepo employee.TimeTrackingRepository,
	behaviorRepo employee.BehaviorNoteRepository,
	leaveRepo leave.RequestRepository,
) *Service {
	return &Service{
		employeeRepo:    employeeRepo,
		performanceRepo: performanceRepo,
		timeTrackRepo:   timeTrackRepo,
		behaviorRepo:    behaviorRepo,
		leaveRepo:       leaveRepo,
		now:             time.Now,
	}
}

func (s *Service) EvaluateEmployee(ctx context.Context, tenantID, employeeID string) (eligibility.Score, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return eligibility.Score{}, err
	}
	if emp.TenantID != tenantID {
		return eligibility.Score{}, user.ErrTenantMismatch
	}

	in, err := s.collectInput(ctx, emp)
	if err != nil {
		return eligibility.Score{}, err
	}

	return Evaluate(in), nil
}

func (s *Service) EvaluateRequest(ctx context.Context, tenantID, requestID string) (eligibility.Score, error) {
	req, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return eligibility.Score{}, err
	}
	if req.TenantID != tenantID {
		return eligibility.Score{}, leave.ErrRequestNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return eligibility.Score{}, err
	}

	in, err := s.collectInput(ctx, emp)
	if err != nil {
		return eligibility.Score{}, err
	}

	overlap, err := s.leaveRepo.CountOverlapping(ctx, tenantID, emp.ID, req.StartDate, req.EndDate)
	if err != nil {
		return eligibility.Score{}, fmt.Errorf("failed to count overlapping leaves: %w", err)
	}
	in.OverlapCount = &overlap

	return Evaluate(in), nil
}

// collectInput gathers every scoring signal for one employee. Missing
// records are normal and map to nil inputs, not errors.
func (s *Service) collectInput(ctx context.Context, emp employee.Employee) (Input, error) {
	in := Input{
		SupervisorRating: emp.SupervisorRating,
		AnnualAllowance:  emp.AnnualLeaveAllowance,
	}

	metrics, err := s.performanceRepo.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		if !errors.Is(err, employee.ErrMetricsNotFound) {
			return Input{}, fmt.Errorf("failed to get performance metrics: %w", err)
		}
	} else {
		in.Metrics = &metrics
	}

	summary, ok, err := s.timeTrackRepo.GetSummary(ctx, emp.ID)
	if err != nil {
		return Input{}, fmt.Errorf("failed to get time tracking summary: %w", err)
	}
	if ok {
		in.TimeTracking = &summary
	}

	notes, err := s.behaviorRepo.ListByEmployeeID(ctx, emp.ID)
	if err != nil {
		return Input{}, fmt.Errorf("failed to list behavior notes: %w", err)
	}
	in.Notes = notes

	used, err := s.leaveRepo.UsedDaysInYear(ctx, emp.ID, s.now().Year())
	if err != nil {
		return Input{}, fmt.Errorf("failed to sum used leave days: %w", err)
	}
	in.UsedLeaveDays = used

	return in, nil
}
