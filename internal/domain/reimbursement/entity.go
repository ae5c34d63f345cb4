package reimbursement

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDenied   Status = "DENIED"

	// StatusAll is only meaningful as a listing filter.
	StatusAll Status = "ALL"
)

const MaxAmount = 20000

type Reimbursement struct {
	ID          int64
	Description string
	Status      Status
	Amount      int64
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatusTotal aggregates reimbursements sharing a status.
type StatusTotal struct {
	Status Status
	Count  int64
	Total  int64
}

// RecordedStatuses are the values a reimbursement row is expected to carry.
func RecordedStatuses() []string {
	return []string{string(StatusPending), string(StatusApproved), string(StatusDenied)}
}

// FilterStatuses are the values accepted by the unfiltered status listing.
func FilterStatuses() []string {
	return append([]string{string(StatusAll)}, RecordedStatuses()...)
}
