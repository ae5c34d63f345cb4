package reimbursement

import (
	"context"
)

type ReimbursementRepository interface {
	Create(ctx context.Context, r Reimbursement) (Reimbursement, error)
	GetByID(ctx context.Context, id int64) (Reimbursement, error)
	List(ctx context.Context) ([]Reimbursement, error)
	ListByUserID(ctx context.Context, userID int64) ([]Reimbursement, error)
	ListByStatus(ctx context.Context, status Status) ([]Reimbursement, error)
	ListByStatusAndUserID(ctx context.Context, status Status, userID int64) ([]Reimbursement, error)
	// ListByStatusAndUserRole treats StatusAll as no status filter.
	ListByStatusAndUserRole(ctx context.Context, status Status, role string) ([]Reimbursement, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (Reimbursement, error)
	UpdateDescription(ctx context.Context, id int64, description string) (Reimbursement, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	// SummarizeByStatus groups by status; a nil userID covers every owner.
	SummarizeByStatus(ctx context.Context, userID *int64) ([]StatusTotal, error)
}
