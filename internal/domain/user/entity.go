package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Default role, limited to own reimbursements
	RoleManager  Role = "manager"  // Can view all users and approve/deny reimbursements
)

type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if user is manager
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
