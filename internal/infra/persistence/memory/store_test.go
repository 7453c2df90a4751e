package memory

import (
	"context"
	"testing"

	"unica/internal/domain/entity"
	domainerrors "unica/internal/domain/errors"
	"unica/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndFind(t *testing.T) {
	store := NewStore()
	repo := NewAccountRepository(store)
	ctx := context.Background()

	account := &entity.Account{
		Email:        "user@example.com",
		PasswordHash: "$2a$10$hash",
		FullName:     "Test User",
	}
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.False(t, account.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Email, byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	store := NewStore()
	repo := NewAccountRepository(store)
	ctx := context.Background()

	first := &entity.Account{Email: "dup@example.com", PasswordHash: "h", FullName: "First"}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.Account{Email: "dup@example.com", PasswordHash: "h", FullName: "Second"}
	err := repo.Create(ctx, second)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrAccountAlreadyExists.ErrorCode(), appErr.ErrorCode())

	// Matching is exact, like the SQL unique index on accounts.email.
	cased := &entity.Account{Email: "DUP@example.com", PasswordHash: "h", FullName: "Cased"}
	require.NoError(t, repo.Create(ctx, cased))

	_, err = repo.FindByEmail(ctx, "Dup@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_UpdatePasswordHash(t *testing.T) {
	store := NewStore()
	repo := NewAccountRepository(store)
	ctx := context.Background()

	account := &entity.Account{Email: "pw@example.com", PasswordHash: "old", FullName: "PW"}
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.UpdatePasswordHash(ctx, "pw@example.com", "new"))

	reloaded, err := repo.FindByEmail(ctx, "pw@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new", reloaded.PasswordHash)

	err = repo.UpdatePasswordHash(ctx, "missing@example.com", "new")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestRefreshTokenRepository_Lifecycle(t *testing.T) {
	store := NewStore()
	repo := NewRefreshTokenRepository(store)
	ctx := context.Background()

	token := &entity.RefreshToken{
		Token:        "opaque-refresh-token",
		AccountID:    uuid.New(),
		AccountEmail: "user@example.com",
	}
	require.NoError(t, repo.Create(ctx, token))

	found, err := repo.FindByToken(ctx, "opaque-refresh-token")
	require.NoError(t, err)
	assert.Equal(t, token.AccountID, found.AccountID)

	require.NoError(t, repo.DeleteByToken(ctx, "opaque-refresh-token"))

	_, err = repo.FindByToken(ctx, "opaque-refresh-token")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)

	err = repo.DeleteByToken(ctx, "opaque-refresh-token")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
}

func TestResetTokenRepository_ReplacesPendingToken(t *testing.T) {
	store := NewStore()
	repo := NewResetTokenRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.PasswordResetToken{Email: "r@example.com", Token: "first"}))
	require.NoError(t, repo.Create(ctx, &entity.PasswordResetToken{Email: "r@example.com", Token: "second"}))

	// The earlier token for the same address is gone.
	_, err := repo.FindByToken(ctx, "first")
	assert.ErrorIs(t, err, repository.ErrResetTokenNotFound)

	found, err := repo.FindByToken(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, "r@example.com", found.Email)

	require.NoError(t, repo.DeleteByToken(ctx, "second"))
	_, err = repo.FindByToken(ctx, "second")
	assert.ErrorIs(t, err, repository.ErrResetTokenNotFound)
}

func TestTwoFactorRepository_FindByAccountID(t *testing.T) {
	store := NewStore()
	repo := NewTwoFactorRepository(store)
	ctx := context.Background()

	accountID := uuid.New()

	_, err := repo.FindByAccountID(ctx, accountID)
	assert.ErrorIs(t, err, repository.ErrTwoFactorNotFound)

	store.EnableTwoFactor(accountID)

	record, err := repo.FindByAccountID(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, accountID, record.AccountID)
}

func TestTransactionManager_Execute(t *testing.T) {
	store := NewStore()
	tm := NewTransactionManager(store)
	ctx := context.Background()

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.AccountRepo().Create(ctx, &entity.Account{
			Email:        "tx@example.com",
			PasswordHash: "h",
			FullName:     "Tx",
		})
	})
	require.NoError(t, err)

	_, err = NewAccountRepository(store).FindByEmail(ctx, "tx@example.com")
	assert.NoError(t, err)
}
