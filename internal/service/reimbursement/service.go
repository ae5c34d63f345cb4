package reimbursement

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ReimbursementServiceImpl struct {
	reimbursementRepo reimbursement.ReimbursementRepository
	userRepo          user.UserRepository
}

func NewReimbursementService(reimbursementRepo reimbursement.ReimbursementRepository, userRepo user.UserRepository) reimbursement.ReimbursementService {
	return &ReimbursementServiceImpl{
		reimbursementRepo: reimbursementRepo,
		userRepo:          userRepo,
	}
}

// Create implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) Create(ctx context.Context, req reimbursement.CreateReimbursementRequest) (reimbursement.Reimbursement, error) {
	if err := req.Validate(); err != nil {
		return reimbursement.Reimbursement{}, err
	}

	// Owner comes from the session; a stale session may point at a deleted user.
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return reimbursement.Reimbursement{}, reimbursement.ErrOwnerNotFound
		}
		return reimbursement.Reimbursement{}, err
	}

	return s.reimbursementRepo.Create(ctx, reimbursement.Reimbursement{
		Description: req.Description,
		Status:      reimbursement.StatusPending,
		Amount:      req.Amount,
		UserID:      req.UserID,
	})
}

// List implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) List(ctx context.Context) ([]reimbursement.ReimbursementResponse, error) {
	list, err := s.reimbursementRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return reimbursement.NewReimbursementResponses(list), nil
}

// ListByUser implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) ListByUser(ctx context.Context, userID int64) ([]reimbursement.ReimbursementResponse, error) {
	list, err := s.reimbursementRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reimbursement.NewReimbursementResponses(list), nil
}

// Delete implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) Delete(ctx context.Context, id int64) (string, error) {
	existing, err := s.reimbursementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reimbursement.ErrReimbursementNotFound) {
			return "", reimbursement.ErrDeleteNotFound
		}
		return "", err
	}

	if err := s.reimbursementRepo.Delete(ctx, id); err != nil {
		return "", err
	}

	return fmt.Sprintf("Reimbursement %d with amount %d was deleted!", existing.ID, existing.Amount), nil
}

// ListByStatus implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) ListByStatus(ctx context.Context, status string) ([]reimbursement.ReimbursementResponse, error) {
	if !validator.IsInSlice(status, reimbursement.FilterStatuses()) {
		return nil, reimbursement.ErrInvalidStatusFilter
	}
	if reimbursement.Status(status) == reimbursement.StatusAll {
		return s.List(ctx)
	}

	list, err := s.reimbursementRepo.ListByStatus(ctx, reimbursement.Status(status))
	if err != nil {
		return nil, err
	}
	return reimbursement.NewReimbursementResponses(list), nil
}

// ListByStatusAndUser implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) ListByStatusAndUser(ctx context.Context, status string, userID int64) ([]reimbursement.ReimbursementResponse, error) {
	if !validator.IsInSlice(status, reimbursement.RecordedStatuses()) {
		return nil, reimbursement.ErrInvalidStatusFilter
	}

	list, err := s.reimbursementRepo.ListByStatusAndUserID(ctx, reimbursement.Status(status), userID)
	if err != nil {
		return nil, err
	}
	return reimbursement.NewReimbursementResponses(list), nil
}

// ListByStatusAndRole implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) ListByStatusAndRole(ctx context.Context, status string, role string) ([]reimbursement.ReimbursementResponse, error) {
	if !validator.IsInSlice(status, reimbursement.FilterStatuses()) {
		return nil, reimbursement.ErrInvalidStatusFilter
	}
	if !validator.IsInSlice(role, []string{string(user.RoleEmployee), string(user.RoleManager)}) {
		return nil, reimbursement.ErrInvalidRoleFilter
	}

	list, err := s.reimbursementRepo.ListByStatusAndUserRole(ctx, reimbursement.Status(status), role)
	if err != nil {
		return nil, err
	}
	return reimbursement.NewReimbursementResponses(list), nil
}

// UpdateStatus implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) UpdateStatus(ctx context.Context, req reimbursement.UpdateStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	existing, err := s.reimbursementRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	status := reimbursement.Status(*req.Status)
	if existing.Status == status {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: fmt.Sprintf("Status is already %s. No action taken!", status),
		}}
	}

	// TODO: reject values outside RecordedStatuses and add a CHECK on reimbursements.status.
	_, err = s.reimbursementRepo.UpdateStatus(ctx, req.ID, status)
	return err
}

// UpdateDescription implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) UpdateDescription(ctx context.Context, req reimbursement.UpdateDescriptionRequest) (reimbursement.ReimbursementResponse, error) {
	if err := req.Validate(); err != nil {
		return reimbursement.ReimbursementResponse{}, err
	}

	updated, err := s.reimbursementRepo.UpdateDescription(ctx, req.ID, *req.Description)
	if err != nil {
		return reimbursement.ReimbursementResponse{}, err
	}
	return reimbursement.NewReimbursementResponse(updated), nil
}

// Summary implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) Summary(ctx context.Context, userID *int64) (reimbursement.SummaryResponse, error) {
	totals, err := s.reimbursementRepo.SummarizeByStatus(ctx, userID)
	if err != nil {
		return reimbursement.SummaryResponse{}, err
	}

	summary := reimbursement.SummaryResponse{
		Statuses: make([]reimbursement.StatusSummary, 0, len(totals)),
		Total:    decimal.Zero,
	}
	for _, t := range totals {
		total := decimal.NewFromInt(t.Total)
		summary.Statuses = append(summary.Statuses, reimbursement.StatusSummary{
			Status: string(t.Status),
			Count:  t.Count,
			Total:  total,
		})
		summary.Count += t.Count
		summary.Total = summary.Total.Add(total)
	}

	return summary, nil
}
