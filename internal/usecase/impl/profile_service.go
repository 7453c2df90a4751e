package impl

import (
	"context"
	"log/slog"
	"time"

	"unica/config"
	deliverycontext "unica/internal/delivery/context"
	domainerrors "unica/internal/domain/errors"
	"unica/internal/domain/repository"
	"unica/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	accountRepo   repository.AccountRepository
	twoFactorRepo repository.TwoFactorRepository
	queryTimeout  time.Duration
	logger        *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	AccountRepo   repository.AccountRepository
	TwoFactorRepo repository.TwoFactorRepository
	Config        *config.Config
	Logger        *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		accountRepo:   params.AccountRepo,
		twoFactorRepo: params.TwoFactorRepo,
		queryTimeout:  params.Config.Auth.QueryTimeout,
		logger:        params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if srv.queryTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, srv.queryTimeout)
}

// GetProfile resolves the account behind an already-validated session token.
// The id can stop resolving if the account vanished after token issuance.
func (srv *profileService) GetProfile(ctx context.Context, accountID uuid.UUID) (*usecase.ProfileOutput, error) {
	opCtx, cancel := srv.storeCtx(ctx)
	defer cancel()

	account, err := srv.accountRepo.FindByID(opCtx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account behind token no longer exists")
		}

		return nil, classifyStoreError(err, "failed to load profile")
	}

	return &usecase.ProfileOutput{Account: account}, nil
}

// Get2FAStatus reports whether two-factor auth is enabled. A missing record
// is the normal disabled state, never a failure.
func (srv *profileService) Get2FAStatus(ctx context.Context, accountID uuid.UUID) (*usecase.TwoFactorStatusOutput, error) {
	opCtx, cancel := srv.storeCtx(ctx)
	defer cancel()

	if _, err := srv.twoFactorRepo.FindByAccountID(opCtx, accountID); err != nil {
		if errors.Is(err, repository.ErrTwoFactorNotFound) {
			return &usecase.TwoFactorStatusOutput{Enabled: false}, nil
		}

		srv.log(ctx).Error("Failed to load two-factor status", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, classifyStoreError(err, "failed to load two-factor status")
	}

	return &usecase.TwoFactorStatusOutput{Enabled: true}, nil
}
