package reimbursement

import (
	"context"
)

type ReimbursementService interface {
	Create(ctx context.Context, req CreateReimbursementRequest) (Reimbursement, error)
	List(ctx context.Context) ([]ReimbursementResponse, error)
	ListByUser(ctx context.Context, userID int64) ([]ReimbursementResponse, error)
	Delete(ctx context.Context, id int64) (string, error)
	ListByStatus(ctx context.Context, status string) ([]ReimbursementResponse, error)
	ListByStatusAndUser(ctx context.Context, status string, userID int64) ([]ReimbursementResponse, error)
	ListByStatusAndRole(ctx context.Context, status string, role string) ([]ReimbursementResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) error
	UpdateDescription(ctx context.Context, req UpdateDescriptionRequest) (ReimbursementResponse, error)
	Summary(ctx context.Context, userID *int64) (SummaryResponse, error)
}
