package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/repository/sqlite"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/testutil"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite runs the repositories against a fresh in-memory database per test.
type RepositoryTestSuite struct {
	suite.Suite
	ctx            context.Context
	db             *database.SQLiteDB
	users          user.UserRepository
	reimbursements reimbursement.ReimbursementRepository
	sessions       auth.SessionRepository
	transactor     database.Transactor
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.OpenInMemoryDB(s.T())
	s.users = sqlite.NewUserRepository(s.db)
	s.reimbursements = sqlite.NewReimbursementRepository(s.db)
	s.sessions = sqlite.NewSessionRepository(s.db)
	s.transactor = sqlite.NewTransactor(s.db)
}

func (s *RepositoryTestSuite) createUser(username string, role user.Role) user.User {
	u, err := s.users.Create(s.ctx, user.User{
		Username:     username,
		FirstName:    "First",
		LastName:     "Last",
		PasswordHash: "hash",
		Role:         role,
	})
	s.Require().NoError(err)
	return u
}

func (s *RepositoryTestSuite) createReimbursement(userID int64, amount int64, status reimbursement.Status) reimbursement.Reimbursement {
	r, err := s.reimbursements.Create(s.ctx, reimbursement.Reimbursement{
		Description: "Taxi",
		Status:      status,
		Amount:      amount,
		UserID:      userID,
	})
	s.Require().NoError(err)
	return r
}

func (s *RepositoryTestSuite) TestUserCreateAndGet() {
	created := s.createUser("alice", user.RoleEmployee)
	s.NotZero(created.ID)
	s.False(created.CreatedAt.IsZero())

	byID, err := s.users.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)
	s.Equal(user.RoleEmployee, byID.Role)

	byName, err := s.users.GetByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(created.ID, byName.ID)
}

func (s *RepositoryTestSuite) TestUserDuplicateUsername() {
	s.createUser("alice", user.RoleEmployee)

	_, err := s.users.Create(s.ctx, user.User{
		Username:     "alice",
		FirstName:    "Other",
		LastName:     "Alice",
		PasswordHash: "hash",
		Role:         user.RoleEmployee,
	})
	s.ErrorIs(err, user.ErrUsernameExists)
}

func (s *RepositoryTestSuite) TestUserNotFound() {
	_, err := s.users.GetByID(s.ctx, 999)
	s.ErrorIs(err, user.ErrUserNotFound)

	_, err = s.users.GetByUsername(s.ctx, "ghost")
	s.ErrorIs(err, user.ErrUserNotFound)

	_, err = s.users.UpdateRole(s.ctx, 999, user.RoleManager)
	s.ErrorIs(err, user.ErrUserNotFound)

	s.ErrorIs(s.users.Delete(s.ctx, 999), user.ErrUserNotFound)
}

func (s *RepositoryTestSuite) TestUserListAndUpdateRole() {
	alice := s.createUser("alice", user.RoleEmployee)
	s.createUser("bob", user.RoleEmployee)

	updated, err := s.users.UpdateRole(s.ctx, alice.ID, user.RoleManager)
	s.Require().NoError(err)
	s.Equal(user.RoleManager, updated.Role)

	list, err := s.users.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
	s.Equal("alice", list[0].Username)
	s.Equal(user.RoleManager, list[0].Role)
}

func (s *RepositoryTestSuite) TestReimbursementLifecycle() {
	alice := s.createUser("alice", user.RoleEmployee)
	created := s.createReimbursement(alice.ID, 150, reimbursement.StatusPending)
	s.Equal(reimbursement.StatusPending, created.Status)
	s.Equal(alice.ID, created.UserID)

	updated, err := s.reimbursements.UpdateStatus(s.ctx, created.ID, reimbursement.StatusApproved)
	s.Require().NoError(err)
	s.Equal(reimbursement.StatusApproved, updated.Status)

	updated, err = s.reimbursements.UpdateDescription(s.ctx, created.ID, "Airport taxi")
	s.Require().NoError(err)
	s.Equal("Airport taxi", updated.Description)

	s.Require().NoError(s.reimbursements.Delete(s.ctx, created.ID))
	_, err = s.reimbursements.GetByID(s.ctx, created.ID)
	s.ErrorIs(err, reimbursement.ErrReimbursementNotFound)
	s.ErrorIs(s.reimbursements.Delete(s.ctx, created.ID), reimbursement.ErrDeleteNotFound)
}

func (s *RepositoryTestSuite) TestReimbursementUpdateUnknown() {
	_, err := s.reimbursements.UpdateStatus(s.ctx, 42, reimbursement.StatusDenied)
	s.ErrorIs(err, reimbursement.ErrReimbursementNotFound)

	_, err = s.reimbursements.UpdateDescription(s.ctx, 42, "x")
	s.ErrorIs(err, reimbursement.ErrReimbursementNotFound)
}

func (s *RepositoryTestSuite) TestReimbursementAmountCheck() {
	alice := s.createUser("alice", user.RoleEmployee)

	_, err := s.reimbursements.Create(s.ctx, reimbursement.Reimbursement{
		Description: "Too much",
		Status:      reimbursement.StatusPending,
		Amount:      reimbursement.MaxAmount + 1,
		UserID:      alice.ID,
	})
	s.Error(err)
}

func (s *RepositoryTestSuite) TestReimbursementRequiresOwner() {
	_, err := s.reimbursements.Create(s.ctx, reimbursement.Reimbursement{
		Description: "Orphan",
		Status:      reimbursement.StatusPending,
		Amount:      10,
		UserID:      12345,
	})
	s.Error(err)
}

func (s *RepositoryTestSuite) TestReimbursementListings() {
	alice := s.createUser("alice", user.RoleEmployee)
	boss := s.createUser("boss", user.RoleManager)

	s.createReimbursement(alice.ID, 10, reimbursement.StatusPending)
	s.createReimbursement(alice.ID, 20, reimbursement.StatusApproved)
	s.createReimbursement(boss.ID, 30, reimbursement.StatusPending)

	all, err := s.reimbursements.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)

	mine, err := s.reimbursements.ListByUserID(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(mine, 2)

	pending, err := s.reimbursements.ListByStatus(s.ctx, reimbursement.StatusPending)
	s.Require().NoError(err)
	s.Len(pending, 2)

	myPending, err := s.reimbursements.ListByStatusAndUserID(s.ctx, reimbursement.StatusPending, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(myPending, 1)
	s.Equal(int64(10), myPending[0].Amount)

	employeePending, err := s.reimbursements.ListByStatusAndUserRole(s.ctx, reimbursement.StatusPending, string(user.RoleEmployee))
	s.Require().NoError(err)
	s.Require().Len(employeePending, 1)
	s.Equal(alice.ID, employeePending[0].UserID)

	employeeAll, err := s.reimbursements.ListByStatusAndUserRole(s.ctx, reimbursement.StatusAll, string(user.RoleEmployee))
	s.Require().NoError(err)
	s.Len(employeeAll, 2)

	denied, err := s.reimbursements.ListByStatus(s.ctx, reimbursement.StatusDenied)
	s.Require().NoError(err)
	s.Empty(denied)
}

func (s *RepositoryTestSuite) TestSummarizeByStatus() {
	alice := s.createUser("alice", user.RoleEmployee)
	bob := s.createUser("bob", user.RoleEmployee)

	s.createReimbursement(alice.ID, 10, reimbursement.StatusPending)
	s.createReimbursement(alice.ID, 15, reimbursement.StatusPending)
	s.createReimbursement(alice.ID, 20, reimbursement.StatusApproved)
	s.createReimbursement(bob.ID, 100, reimbursement.StatusDenied)

	all, err := s.reimbursements.SummarizeByStatus(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(reimbursement.StatusTotal{Status: reimbursement.StatusApproved, Count: 1, Total: 20}, all[0])
	s.Equal(reimbursement.StatusTotal{Status: reimbursement.StatusDenied, Count: 1, Total: 100}, all[1])
	s.Equal(reimbursement.StatusTotal{Status: reimbursement.StatusPending, Count: 2, Total: 25}, all[2])

	mine, err := s.reimbursements.SummarizeByStatus(s.ctx, &alice.ID)
	s.Require().NoError(err)
	s.Len(mine, 2)
}

func (s *RepositoryTestSuite) TestSessionLifecycle() {
	alice := s.createUser("alice", user.RoleEmployee)
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	s.Require().NoError(s.sessions.Create(s.ctx, auth.Session{
		ID:        "f2a1d9c4-0f7e-4a5b-9c1d-1234567890ab",
		UserID:    alice.ID,
		ExpiresAt: expiresAt,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
	}))

	found, err := s.sessions.GetByID(s.ctx, "f2a1d9c4-0f7e-4a5b-9c1d-1234567890ab")
	s.Require().NoError(err)
	s.Equal(alice.ID, found.UserID)
	s.True(found.ExpiresAt.Equal(expiresAt))
	s.Nil(found.RevokedAt)
	s.Equal("test-agent", found.UserAgent)
	s.True(found.Active(time.Now()))

	s.Require().NoError(s.sessions.Revoke(s.ctx, found.ID))
	revoked, err := s.sessions.GetByID(s.ctx, found.ID)
	s.Require().NoError(err)
	s.NotNil(revoked.RevokedAt)
	s.False(revoked.Active(time.Now()))

	s.Require().NoError(s.sessions.DeleteByUserID(s.ctx, alice.ID))
	_, err = s.sessions.GetByID(s.ctx, found.ID)
	s.ErrorIs(err, auth.ErrSessionNotFound)
}

func (s *RepositoryTestSuite) TestTransactorCommit() {
	alice := s.createUser("alice", user.RoleEmployee)
	s.createReimbursement(alice.ID, 10, reimbursement.StatusPending)

	err := s.transactor.WithinTransaction(s.ctx, func(txCtx context.Context) error {
		n, err := s.reimbursements.DeleteByUserID(txCtx, alice.ID)
		if err != nil {
			return err
		}
		s.Equal(int64(1), n)
		return s.users.Delete(txCtx, alice.ID)
	})
	s.Require().NoError(err)

	_, err = s.users.GetByID(s.ctx, alice.ID)
	s.ErrorIs(err, user.ErrUserNotFound)
}

func (s *RepositoryTestSuite) TestTransactorRollback() {
	alice := s.createUser("alice", user.RoleEmployee)
	s.createReimbursement(alice.ID, 10, reimbursement.StatusPending)

	boom := errors.New("boom")
	err := s.transactor.WithinTransaction(s.ctx, func(txCtx context.Context) error {
		if _, err := s.reimbursements.DeleteByUserID(txCtx, alice.ID); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	list, err := s.reimbursements.ListByUserID(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
