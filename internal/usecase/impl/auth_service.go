// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"unica/config"
	deliverycontext "unica/internal/delivery/context"
	"unica/internal/domain/entity"
	domainerrors "unica/internal/domain/errors"
	"unica/internal/domain/repository"
	"unica/internal/domain/service"
	"unica/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	accountRepo      repository.AccountRepository
	refreshTokenRepo repository.RefreshTokenRepository
	resetTokenRepo   repository.ResetTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	mailer           service.Mailer
	metrics          service.AuthMetrics
	queryTimeout     time.Duration
	issueRefresh     bool
	rotateRefresh    bool
	gateReset        bool
	exposeResetToken bool
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	AccountRepo      repository.AccountRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	ResetTokenRepo   repository.ResetTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Mailer           service.Mailer `optional:"true"`
	Metrics          service.AuthMetrics
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	authCfg := params.Config.Auth

	return &authService{
		txManager:        params.TxManager,
		accountRepo:      params.AccountRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		resetTokenRepo:   params.ResetTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		mailer:           params.Mailer,
		metrics:          params.Metrics,
		queryTimeout:     authCfg.QueryTimeout,
		issueRefresh:     authCfg.IssueRefreshTokenOnLogin,
		rotateRefresh:    authCfg.RotateRefreshTokens,
		gateReset:        authCfg.GateResetOnAccountExists,
		exposeResetToken: authCfg.ExposeResetToken,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// storeCtx bounds a store round-trip so a stalled store surfaces as a
// classified timeout instead of hanging the request.
func (srv *authService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if srv.queryTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, srv.queryTimeout)
}

// classifyStoreError maps raw store failures to domain error kinds. Errors
// already classified pass through untouched; raw detail stays in logs only.
func classifyStoreError(err error, details string) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.ErrStoreTimeout.WrapMessage(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// Register creates a new account and mints its first session token.
// The existence check and the insert run in one transaction; the unique index
// on email remains the final backstop against concurrent duplicate inserts.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	var created *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		lookupCtx, cancelLookup := srv.storeCtx(ctx)
		_, err := accountRepo.FindByEmail(lookupCtx, input.Email)
		cancelLookup()
		if err == nil {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return classifyStoreError(err, "failed to check account existence")
		}

		hashedPassword, err := srv.hasher.Hash(ctx, input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}

		account := &entity.Account{
			Email:        input.Email,
			PasswordHash: hashedPassword,
			FullName:     input.FullName,
		}

		// The store deadline starts after the hash, not before it.
		createCtx, cancelCreate := srv.storeCtx(ctx)
		defer cancelCreate()

		if err := accountRepo.Create(createCtx, account); err != nil {
			return classifyStoreError(err, "failed to create account")
		}
		created = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	sessionToken, err := srv.tokenService.GenerateSessionToken(created.ID, created.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to mint session token after registration", slog.Any("accountID", created.ID), slog.Any("error", err))

		return nil, domainerrors.ErrTokenGenerationFailed.WrapMessage("failed to mint session token")
	}

	srv.metrics.RecordRegistration()
	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", created.ID))

	return &usecase.RegisterOutput{Account: created, SessionToken: sessionToken}, nil
}

// Login verifies credentials and mints a fresh session token. With refresh
// issuance enabled an opaque refresh token is persisted alongside it;
// otherwise login leaves the store untouched. An unknown email and a wrong
// password produce the same failure, so the response never reveals whether an
// account exists.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	opCtx, cancel := srv.storeCtx(ctx)
	defer cancel()

	account, err := srv.accountRepo.FindByEmail(opCtx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.metrics.RecordLoginFailure()

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, classifyStoreError(err, "failed to look up account")
	}

	match, err := srv.hasher.Check(ctx, input.Password, account.PasswordHash)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to verify password")
	}
	if !match {
		srv.metrics.RecordLoginFailure()

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	sessionToken, err := srv.tokenService.GenerateSessionToken(account.ID, account.Email)
	if err != nil {
		return nil, domainerrors.ErrTokenGenerationFailed.WrapMessage("failed to mint session token")
	}

	var refreshValue string
	if srv.issueRefresh {
		refreshValue, err = srv.tokenService.GenerateRefreshToken()
		if err != nil {
			return nil, domainerrors.ErrTokenGenerationFailed.WrapMessage("failed to mint refresh token")
		}

		createCtx, cancelCreate := srv.storeCtx(ctx)
		defer cancelCreate()

		if err := srv.refreshTokenRepo.Create(createCtx, &entity.RefreshToken{
			Token:        refreshValue,
			AccountID:    account.ID,
			AccountEmail: account.Email,
		}); err != nil {
			return nil, classifyStoreError(err, "failed to persist refresh token")
		}
	}

	srv.metrics.RecordLoginSuccess()
	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		Account:      account,
		SessionToken: sessionToken,
		RefreshToken: refreshValue,
	}, nil
}

// Logout acknowledges client-side token discard. Session tokens are stateless
// and cannot be revoked, so there is nothing to do against the store.
func (srv *authService) Logout(ctx context.Context) error {
	srv.log(ctx).Debug("Logout acknowledged")

	return nil
}

// RefreshToken exchanges a stored refresh token for a new session token.
// With rotation enabled the presented token is replaced in the same
// transaction, so a replayed value is rejected afterwards.
func (srv *authService) RefreshToken(ctx context.Context, input usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	if !srv.rotateRefresh {
		opCtx, cancel := srv.storeCtx(ctx)
		defer cancel()

		record, err := srv.refreshTokenRepo.FindByToken(opCtx, input.RefreshToken)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("unknown refresh token")
			}

			return nil, classifyStoreError(err, "failed to look up refresh token")
		}

		sessionToken, err := srv.tokenService.GenerateSessionToken(record.AccountID, record.AccountEmail)
		if err != nil {
			return nil, domainerrors.ErrTokenGenerationFailed.WrapMessage("failed to mint session token")
		}

		srv.metrics.RecordTokenRefresh()

		return &usecase.RefreshOutput{SessionToken: sessionToken}, nil
	}

	var sessionToken, rotatedValue string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		opCtx, cancel := srv.storeCtx(ctx)
		defer cancel()

		record, err := refreshRepo.FindByToken(opCtx, input.RefreshToken)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid.WrapMessage("unknown refresh token")
			}

			return classifyStoreError(err, "failed to look up refresh token")
		}

		sessionToken, err = srv.tokenService.GenerateSessionToken(record.AccountID, record.AccountEmail)
		if err != nil {
			return domainerrors.ErrTokenGenerationFailed.WrapMessage("failed to mint session token")
		}

		rotatedValue, err = srv.tokenService.GenerateRefreshToken()
		if err != nil {
			return domainerrors.ErrTokenGenerationFailed.WrapMessage("failed to mint replacement refresh token")
		}

		if err := refreshRepo.Create(opCtx, &entity.RefreshToken{
			Token:        rotatedValue,
			AccountID:    record.AccountID,
			AccountEmail: record.AccountEmail,
		}); err != nil {
			return classifyStoreError(err, "failed to persist replacement refresh token")
		}
		if err := refreshRepo.DeleteByToken(opCtx, input.RefreshToken); err != nil {
			return classifyStoreError(err, "failed to retire refresh token")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.metrics.RecordTokenRefresh()

	return &usecase.RefreshOutput{SessionToken: sessionToken, RefreshToken: rotatedValue}, nil
}

// ForgotPassword issues a signed, time-boxed reset token for the address and
// stores it keyed by email. The response is identical whether or not the
// account exists; with existence gating enabled the token is simply not
// issued for unknown addresses.
func (srv *authService) ForgotPassword(ctx context.Context, email string) (*usecase.ForgotPasswordOutput, error) {
	if srv.gateReset {
		opCtx, cancel := srv.storeCtx(ctx)
		defer cancel()

		if _, err := srv.accountRepo.FindByEmail(opCtx, email); err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				srv.log(ctx).Debug("Reset requested for unknown address", slog.String("email", email))

				return &usecase.ForgotPasswordOutput{}, nil
			}

			return nil, classifyStoreError(err, "failed to look up account")
		}
	}

	resetToken, err := srv.tokenService.GenerateResetToken(email)
	if err != nil {
		return nil, domainerrors.ErrTokenGenerationFailed.WrapMessage("failed to mint reset token")
	}

	opCtx, cancel := srv.storeCtx(ctx)
	defer cancel()

	if err := srv.resetTokenRepo.Create(opCtx, &entity.PasswordResetToken{
		Email: email,
		Token: resetToken,
	}); err != nil {
		return nil, classifyStoreError(err, "failed to store reset token")
	}

	if srv.mailer != nil {
		// Mail delivery is best effort. Failing the request here would make the
		// response differ between reachable and unreachable mailboxes.
		if err := srv.mailer.SendPasswordReset(ctx, email, resetToken); err != nil {
			srv.log(ctx).Error("Failed to send reset email", slog.String("email", email), slog.Any("error", err))
		}
	}

	output := &usecase.ForgotPasswordOutput{}
	if srv.exposeResetToken {
		output.ResetToken = resetToken
	}

	return output, nil
}

// ResetPassword redeems a reset token and replaces the account's password.
// The password update commits before the token row is deleted; a crash in
// between leaves the token valid for retry instead of silently burning it.
func (srv *authService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	email, err := srv.tokenService.ValidateResetToken(input.Token)
	if err != nil {
		return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token failed verification")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		resetRepo := repoFactory.ResetTokenRepo()

		lookupCtx, cancelLookup := srv.storeCtx(ctx)
		record, err := resetRepo.FindByToken(lookupCtx, input.Token)
		cancelLookup()
		if err != nil {
			if errors.Is(err, repository.ErrResetTokenNotFound) {
				// Already consumed, or never issued by this service.
				return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token not pending")
			}

			return classifyStoreError(err, "failed to look up reset token")
		}
		if record.Email != email {
			return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token does not match pending record")
		}

		hashedPassword, err := srv.hasher.Hash(ctx, input.NewPassword)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
		}

		// Each round-trip after the hash gets a fresh deadline.
		updateCtx, cancelUpdate := srv.storeCtx(ctx)
		err = accountRepo.UpdatePasswordHash(updateCtx, email, hashedPassword)
		cancelUpdate()
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrResetTokenInvalid.WrapMessage("account no longer exists")
			}

			return classifyStoreError(err, "failed to update password hash")
		}

		deleteCtx, cancelDelete := srv.storeCtx(ctx)
		defer cancelDelete()

		if err := resetRepo.DeleteByToken(deleteCtx, input.Token); err != nil {
			return classifyStoreError(err, "failed to consume reset token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset failed", slog.Any("error", err))

		return err
	}

	srv.metrics.RecordPasswordReset()
	srv.log(ctx).Info("Password reset completed", slog.String("email", email))

	return nil
}

// ValidateCredentials reports whether the pair matches an account. It is a
// pure check: no token is minted and nothing in the store changes. An unknown
// email is a false result, not a failure.
func (srv *authService) ValidateCredentials(ctx context.Context, input usecase.LoginInput) (bool, error) {
	opCtx, cancel := srv.storeCtx(ctx)
	defer cancel()

	account, err := srv.accountRepo.FindByEmail(opCtx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return false, nil
		}

		return false, classifyStoreError(err, "failed to look up account")
	}

	match, err := srv.hasher.Check(ctx, input.Password, account.PasswordHash)
	if err != nil {
		return false, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to verify password")
	}

	return match, nil
}
