package reimbursement

import "errors"

var (
	ErrReimbursementNotFound = errors.New("No reimbursement found!")
	ErrDeleteNotFound        = errors.New("Reimbursement not found! Can't delete")
	ErrOwnerNotFound         = errors.New("Reimbursement owner not found")
	ErrInvalidStatusFilter   = errors.New("Please, select a valid status option!")
	ErrInvalidRoleFilter     = errors.New("Please, select a valid role option!")
)
