package reimbursement

import (
	"fmt"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ReimbursementResponse is the outward projection of a reimbursement.
type ReimbursementResponse struct {
	ReimbID     int64  `json:"reimbId"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
	UserID      int64  `json:"userId"`
}

func NewReimbursementResponse(r Reimbursement) ReimbursementResponse {
	return ReimbursementResponse{
		ReimbID:     r.ID,
		Description: r.Description,
		Status:      string(r.Status),
		Amount:      r.Amount,
		UserID:      r.UserID,
	}
}

func NewReimbursementResponses(list []Reimbursement) []ReimbursementResponse {
	out := make([]ReimbursementResponse, 0, len(list))
	for _, r := range list {
		out = append(out, NewReimbursementResponse(r))
	}
	return out
}

type CreateReimbursementRequest struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	// UserID is taken from the session, never from the body.
	UserID int64 `json:"-"`
}

func (r *CreateReimbursementRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "Enter a valid amount!",
		})
	} else if r.Amount > MaxAmount {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("Reimbursement Amount cannot be bigger than %d!", MaxAmount),
		})
	}

	if validator.IsSentinel(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "Description cannot be None!",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateStatusRequest struct {
	ID     int64   `json:"-"`
	Status *string `json:"status"`
}

// Validate only checks the payload shape; any status other than the current
// one is accepted by the service.
func (r *UpdateStatusRequest) Validate() error {
	if r.Status == nil || validator.IsEmpty(*r.Status) {
		return validator.MissingField("status")
	}
	return nil
}

type UpdateDescriptionRequest struct {
	ID          int64   `json:"-"`
	Description *string `json:"description"`
}

func (r *UpdateDescriptionRequest) Validate() error {
	if r.Description == nil {
		return validator.MissingField("description")
	}
	return nil
}

type StatusSummary struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type SummaryResponse struct {
	Statuses []StatusSummary `json:"statuses"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
}
