package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"unica/config"
	"unica/internal/domain/entity"
	domainerrors "unica/internal/domain/errors"
	"unica/internal/infra/persistence/memory"
	"unica/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileServiceFixture(t *testing.T) (usecase.ProfileUsecase, *memory.Store) {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{}}
	store := memory.NewStore()

	svc := NewProfileService(ProfileServiceParams{
		AccountRepo:   memory.NewAccountRepository(store),
		TwoFactorRepo: memory.NewTwoFactorRepository(store),
		Config:        cfg,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, store
}

func TestGetProfile(t *testing.T) {
	svc, store := newProfileServiceFixture(t)
	ctx := context.Background()

	account := &entity.Account{Email: "p@example.com", PasswordHash: "h", FullName: "Pat"}
	require.NoError(t, memory.NewAccountRepository(store).Create(ctx, account))

	out, err := svc.GetProfile(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, out.Account.ID)
	assert.Equal(t, "p@example.com", out.Account.Email)
	assert.Equal(t, "Pat", out.Account.FullName)
}

func TestGetProfile_AccountVanished(t *testing.T) {
	svc, _ := newProfileServiceFixture(t)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrAccountNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestGet2FAStatus(t *testing.T) {
	svc, store := newProfileServiceFixture(t)
	ctx := context.Background()

	accountID := uuid.New()

	// No record means disabled, not an error.
	out, err := svc.Get2FAStatus(ctx, accountID)
	require.NoError(t, err)
	assert.False(t, out.Enabled)

	store.EnableTwoFactor(accountID)

	out, err = svc.Get2FAStatus(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, out.Enabled)
}
