package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, ctx context.Context, repo user.UserRepository, username string, role user.Role) user.User {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret1!"), bcrypt.MinCost)
	created, err := repo.Create(ctx, user.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hashedPassword),
		Role:         role,
	})
	require.NoError(t, err)
	return created
}

// Test Create and lookups
func TestUserRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	created := createTestUser(t, ctx, repo, "alice", user.RoleEmployee)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(byName.PasswordHash), []byte("secret1!")))
}

// Test Create with duplicate username
func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	createTestUser(t, ctx, repo, "alice", user.RoleEmployee)
	_, err := repo.Create(ctx, user.User{
		Username:     "alice",
		FirstName:    "Another",
		LastName:     "Alice",
		PasswordHash: "hash",
		Role:         user.RoleEmployee,
	})

	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

// Test lookups of a missing user
func TestUserRepository_NotFound(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	_, err := repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = repo.UpdateRole(ctx, 999, user.RoleManager)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 999), user.ErrUserNotFound)
}

// Test UpdateRole and List
func TestUserRepository_UpdateRoleAndList(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	alice := createTestUser(t, ctx, repo, "alice", user.RoleEmployee)
	createTestUser(t, ctx, repo, "bob", user.RoleEmployee)

	updated, err := repo.UpdateRole(ctx, alice.ID, user.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, updated.Role)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

// Test reimbursement queries against PostgreSQL
func TestReimbursementRepository_Listings(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	users := postgresql.NewUserRepository(setup.DB)
	repo := postgresql.NewReimbursementRepository(setup.DB)

	alice := createTestUser(t, ctx, users, "alice", user.RoleEmployee)
	boss := createTestUser(t, ctx, users, "boss", user.RoleManager)

	for _, r := range []reimbursement.Reimbursement{
		{Description: "A", Status: reimbursement.StatusPending, Amount: 10, UserID: alice.ID},
		{Description: "B", Status: reimbursement.StatusApproved, Amount: 20, UserID: alice.ID},
		{Description: "C", Status: reimbursement.StatusPending, Amount: 30, UserID: boss.ID},
	} {
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}

	pending, err := repo.ListByStatus(ctx, reimbursement.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	employeeAll, err := repo.ListByStatusAndUserRole(ctx, reimbursement.StatusAll, string(user.RoleEmployee))
	require.NoError(t, err)
	assert.Len(t, employeeAll, 2)

	managerPending, err := repo.ListByStatusAndUserRole(ctx, reimbursement.StatusPending, string(user.RoleManager))
	require.NoError(t, err)
	assert.Len(t, managerPending, 1)

	summary, err := repo.SummarizeByStatus(ctx, &alice.ID)
	require.NoError(t, err)
	assert.Len(t, summary, 2)

	n, err := repo.DeleteByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.ErrorIs(t, repo.Delete(ctx, 999), reimbursement.ErrDeleteNotFound)
}

// Test session create, revoke and cascade
func TestSessionRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	users := postgresql.NewUserRepository(setup.DB)
	repo := postgresql.NewSessionRepository(setup.DB)

	alice := createTestUser(t, ctx, users, "alice", user.RoleEmployee)
	sessionID := "6f1c2a3b-4d5e-4f60-8a9b-0c1d2e3f4a5b"

	require.NoError(t, repo.Create(ctx, auth.Session{
		ID:        sessionID,
		UserID:    alice.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	found, err := repo.GetByID(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, found.Active(time.Now()))
	assert.Empty(t, found.UserAgent)

	require.NoError(t, repo.Revoke(ctx, sessionID))
	found, err = repo.GetByID(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, found.Active(time.Now()))

	require.NoError(t, repo.DeleteByUserID(ctx, alice.ID))
	_, err = repo.GetByID(ctx, sessionID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
