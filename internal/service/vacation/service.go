package vacation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/leave"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/loan"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/notification"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

type VacationServiceImpl struct {
	requestRepo  vacation.VacationRequestRepository
	employeeRepo employee.EmployeeRepository
	loanRepo     loan.LoanRepository
	ledger       leave.LedgerService
	notifier     notification.Service
	logger       *slog.Logger
	now          func() time.Time
}

func NewVacationService(
	requestRepo vacation.VacationRequestRepository,
	employeeRepo employee.EmployeeRepository,
	loanRepo loan.LoanRepository,
	ledger leave.LedgerService,
	notifier notification.Service,
	logger *slog.Logger,
) vacation.VacationService {
	return &VacationServiceImpl{
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		loanRepo:     loanRepo,
		ledger:       ledger,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// ========== SUBMISSION ==========

func (s *VacationServiceImpl) Submit(ctx context.Context, req vacation.SubmitVacationRequest) (vacation.VacationRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	start, end := req.Dates()

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}

	blocked, err := s.requestRepo.HasBlockingOverlap(ctx, req.EmployeeID, start, end)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	if blocked {
		return vacation.VacationRequestResponse{}, fmt.Errorf(
			"%w: employee %s has a pending or approved request intersecting %s..%s",
			vacation.ErrOverlappingRequest, req.EmployeeID, req.StartDate, req.EndDate)
	}

	chain := make([]vacation.ApprovalStep, 0, len(req.ApproverIDs))
	for _, approverID := range req.ApproverIDs {
		chain = append(chain, vacation.ApprovalStep{ApproverID: approverID, Status: vacation.StepPending})
	}

	request := vacation.VacationRequest{
		EmployeeID:    req.EmployeeID,
		LeaveType:     req.LeaveType,
		StartDate:     dateutil.Date(start),
		EndDate:       dateutil.Date(end),
		Reason:        req.Reason,
		Status:        vacation.StatusPending,
		PauseLoans:    req.PauseLoans,
		ApprovalChain: chain,
		AuditLog: []vacation.AuditEntry{{
			Action:    "submitted",
			ActorID:   req.EmployeeID,
			Timestamp: s.now(),
		}},
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}

	s.notifier.Emit(ctx, notification.EmitRequest{
		RecipientID: chain[0].ApproverID,
		Type:        notification.TypeApprovalActionRequired,
		Title:       "Vacation request awaiting your approval",
		Message:     fmt.Sprintf("%s requested %s leave %s to %s.", emp.FullName, req.LeaveType, req.StartDate, req.EndDate),
		Data:        map[string]interface{}{"request_id": created.ID},
	})

	return vacation.ToResponse(created), nil
}

func (s *VacationServiceImpl) Get(ctx context.Context, requestID string) (vacation.VacationRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	return vacation.ToResponse(request), nil
}

// ========== APPROVAL ACTIONS ==========

func (s *VacationServiceImpl) ActOnApproval(ctx context.Context, requestID, actorID string, req vacation.ApprovalActionRequest) (vacation.VacationRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationRequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	if request.Status != vacation.StatusPending {
		return vacation.VacationRequestResponse{}, vacation.ErrAlreadyProcessed
	}

	stepIndex := request.CurrentStepIndex()
	if stepIndex < 0 {
		return vacation.VacationRequestResponse{}, vacation.ErrNoPendingStep
	}
	if !request.ApprovalChain[stepIndex].CanActBy(actorID) {
		return vacation.VacationRequestResponse{}, vacation.ErrNotAuthorizedApprover
	}

	note := ""
	if req.Note != nil {
		note = *req.Note
	}
	now := s.now()

	switch vacation.ApprovalAction(req.Action) {
	case vacation.ActionDelegate:
		request.ApprovalChain[stepIndex].DelegatedToID = req.DelegateToID
		request.AuditLog = request.Appended("delegated", actorID, note, now)
		updated, err := s.requestRepo.Update(ctx, request)
		if err != nil {
			return vacation.VacationRequestResponse{}, err
		}
		s.notifier.Emit(ctx, notification.EmitRequest{
			RecipientID: *req.DelegateToID,
			Type:        notification.TypeApprovalActionRequired,
			Title:       "Vacation approval delegated to you",
			Message:     fmt.Sprintf("Approval of request %s was delegated to you.", requestID),
			Data:        map[string]interface{}{"request_id": requestID},
		})
		return vacation.ToResponse(updated), nil

	case vacation.ActionReject:
		// Rejection short-circuits the chain; later steps stay untouched.
		request.ApprovalChain[stepIndex].Status = vacation.StepRejected
		request.ApprovalChain[stepIndex].ActedAt = &now
		request.Status = vacation.StatusRejected
		request.AuditLog = request.Appended("rejected", actorID, note, now)
		updated, err := s.requestRepo.Update(ctx, request)
		if err != nil {
			return vacation.VacationRequestResponse{}, err
		}
		s.notifier.Emit(ctx, notification.EmitRequest{
			RecipientID: updated.EmployeeID,
			Type:        notification.TypeLeaveRejected,
			Title:       "Vacation request rejected",
			Message:     fmt.Sprintf("Your %s leave request was rejected.", updated.LeaveType),
			Data:        map[string]interface{}{"request_id": requestID},
		})
		return vacation.ToResponse(updated), nil

	case vacation.ActionApprove:
		return s.approveStep(ctx, request, stepIndex, actorID, note, now)
	}

	return vacation.VacationRequestResponse{}, vacation.ErrNoPendingStep
}

func (s *VacationServiceImpl) approveStep(ctx context.Context, request vacation.VacationRequest, stepIndex int, actorID, note string, now time.Time) (vacation.VacationRequestResponse, error) {
	request.ApprovalChain[stepIndex].Status = vacation.StepApproved
	request.ApprovalChain[stepIndex].ActedAt = &now
	request.AuditLog = request.Appended("approved", actorID, note, now)

	final := request.ChainApproved()
	if !final {
		updated, err := s.requestRepo.Update(ctx, request)
		if err != nil {
			return vacation.VacationRequestResponse{}, err
		}
		next := updated.ApprovalChain[updated.CurrentStepIndex()]
		recipient := next.ApproverID
		if next.DelegatedToID != nil {
			recipient = *next.DelegatedToID
		}
		s.notifier.Emit(ctx, notification.EmitRequest{
			RecipientID: recipient,
			Type:        notification.TypeApprovalActionRequired,
			Title:       "Vacation request awaiting your approval",
			Message:     fmt.Sprintf("Request %s passed the previous approval step.", request.ID),
			Data:        map[string]interface{}{"request_id": request.ID},
		})
		return vacation.ToResponse(updated), nil
	}

	// Terminal approval: consume the leave balance before flipping the
	// request so an insufficient balance rejects the approval outright.
	days := decimal.NewFromInt(int64(request.Days()))
	year := request.StartDate.Year()
	if _, err := s.ledger.Consume(ctx, request.EmployeeID, request.LeaveType, year, days, request.StartDate); err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	if policy, _, err := s.ledger.PolicyFor(ctx, request.EmployeeID, request.LeaveType, request.StartDate); err == nil {
		request.AppliedPolicyID = &policy.ID
	}

	request.Status = vacation.StatusApproved
	updated, err := s.requestRepo.Update(ctx, request)
	if err != nil {
		// The consumption already happened; give the days back so a retry
		// starts from a clean ledger.
		if _, restoreErr := s.ledger.Restore(ctx, request.EmployeeID, request.LeaveType, year, days); restoreErr != nil {
			s.logger.Error("failed to restore leave balance after update failure",
				"request_id", request.ID, "error", restoreErr)
		}
		return vacation.VacationRequestResponse{}, err
	}

	if updated.PauseLoans {
		if _, err := s.loanRepo.PauseActiveByEmployee(ctx, updated.EmployeeID); err != nil {
			s.logger.Error("failed to pause loans on approval",
				"request_id", updated.ID, "employee_id", updated.EmployeeID, "error", err)
		}
	}
	if err := s.employeeRepo.UpdateStatus(ctx, updated.EmployeeID, employee.StatusOnLeave); err != nil {
		s.logger.Error("failed to flag employee on leave",
			"request_id", updated.ID, "employee_id", updated.EmployeeID, "error", err)
	}

	s.notifier.Emit(ctx, notification.EmitRequest{
		RecipientID: updated.EmployeeID,
		Type:        notification.TypeLeaveApproved,
		Title:       "Vacation request approved",
		Message:     fmt.Sprintf("Your %s leave from %s to %s is approved.", updated.LeaveType, updated.StartDate.Format("2006-01-02"), updated.EndDate.Format("2006-01-02")),
		Data:        map[string]interface{}{"request_id": updated.ID},
	})

	return vacation.ToResponse(updated), nil
}

// ========== CANCELLATION / COMPLETION ==========

func (s *VacationServiceImpl) Cancel(ctx context.Context, requestID, actorID string, note *string) (vacation.VacationRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	if request.Status != vacation.StatusPending && request.Status != vacation.StatusApproved {
		return vacation.VacationRequestResponse{}, vacation.ErrAlreadyProcessed
	}
	wasApproved := request.Status == vacation.StatusApproved

	auditNote := ""
	if note != nil {
		auditNote = *note
	}
	request.Status = vacation.StatusCancelled
	request.AuditLog = request.Appended("cancelled", actorID, auditNote, s.now())

	updated, err := s.requestRepo.Update(ctx, request)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}

	if wasApproved {
		days := decimal.NewFromInt(int64(updated.Days()))
		if _, err := s.ledger.Restore(ctx, updated.EmployeeID, updated.LeaveType, updated.StartDate.Year(), days); err != nil {
			s.logger.Error("failed to restore leave balance on cancellation",
				"request_id", updated.ID, "error", err)
		}
		if updated.PauseLoans {
			if _, err := s.loanRepo.ResumePausedByEmployee(ctx, updated.EmployeeID); err != nil {
				s.logger.Error("failed to resume loans on cancellation",
					"request_id", updated.ID, "error", err)
			}
		}
		if err := s.employeeRepo.UpdateStatus(ctx, updated.EmployeeID, employee.StatusActive); err != nil {
			s.logger.Error("failed to restore employee status on cancellation",
				"request_id", updated.ID, "error", err)
		}
	}

	s.notifier.Emit(ctx, notification.EmitRequest{
		RecipientID: updated.EmployeeID,
		Type:        notification.TypeLeaveCancelled,
		Title:       "Vacation request cancelled",
		Message:     fmt.Sprintf("Your %s leave request was cancelled.", updated.LeaveType),
		Data:        map[string]interface{}{"request_id": updated.ID},
	})

	return vacation.ToResponse(updated), nil
}

func (s *VacationServiceImpl) Complete(ctx context.Context, requestID, actorID string, resumeLoans bool) (vacation.VacationRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}
	if request.Status != vacation.StatusApproved {
		if request.Status.Terminal() {
			return vacation.VacationRequestResponse{}, vacation.ErrAlreadyProcessed
		}
		return vacation.VacationRequestResponse{}, vacation.ErrNotApproved
	}

	request.Status = vacation.StatusCompleted
	request.AuditLog = request.Appended("completed", actorID, "", s.now())

	updated, err := s.requestRepo.Update(ctx, request)
	if err != nil {
		return vacation.VacationRequestResponse{}, err
	}

	if err := s.employeeRepo.UpdateStatus(ctx, updated.EmployeeID, employee.StatusActive); err != nil {
		s.logger.Error("failed to restore employee status on completion",
			"request_id", updated.ID, "employee_id", updated.EmployeeID, "error", err)
	}
	if resumeLoans {
		if _, err := s.loanRepo.ResumePausedByEmployee(ctx, updated.EmployeeID); err != nil {
			s.logger.Error("failed to resume loans on completion",
				"request_id", updated.ID, "employee_id", updated.EmployeeID, "error", err)
		}
	}

	s.notifier.Emit(ctx, notification.EmitRequest{
		RecipientID: updated.EmployeeID,
		Type:        notification.TypeLeaveCompleted,
		Title:       "Welcome back",
		Message:     fmt.Sprintf("Your %s leave is marked completed.", updated.LeaveType),
		Data:        map[string]interface{}{"request_id": updated.ID},
	})

	return vacation.ToResponse(updated), nil
}
