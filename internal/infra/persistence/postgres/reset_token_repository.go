package postgres

import (
	"context"

	"unica/internal/domain/entity"
	domainerrors "unica/internal/domain/errors"
	"unica/internal/domain/repository"
	"unica/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// resetTokenRepository implements the domain.ResetTokenRepository interface.
type resetTokenRepository struct {
	db *gorm.DB
}

// NewResetTokenRepository is the constructor for resetTokenRepository.
func NewResetTokenRepository(db *gorm.DB) repository.ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

// Create stores a pending reset token keyed by email. A second request for the
// same address replaces the earlier token, leaving at most one pending reset.
func (repo *resetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	tokenM := fromResetTokenDomain(token)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "created_at"}),
		}).
		Create(tokenM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required token information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to store reset token")
	}

	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindByToken retrieves a pending reset record by its exact token value.
func (repo *resetTokenRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	var tokenM model.PasswordResetTokenModel
	if err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResetTokenNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toResetTokenDomain(&tokenM), nil
}

// DeleteByToken consumes a reset token so it cannot be redeemed twice.
func (repo *resetTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	result := repo.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.PasswordResetTokenModel{})

	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrResetTokenNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toResetTokenDomain converts a GORM PasswordResetTokenModel to a domain entity.
func toResetTokenDomain(data *model.PasswordResetTokenModel) *entity.PasswordResetToken {
	if data == nil {
		return nil
	}

	return &entity.PasswordResetToken{
		Email:     data.Email,
		Token:     data.Token,
		CreatedAt: data.CreatedAt,
	}
}

// fromResetTokenDomain converts a domain entity to a GORM PasswordResetTokenModel.
func fromResetTokenDomain(data *entity.PasswordResetToken) *model.PasswordResetTokenModel {
	if data == nil {
		return nil
	}

	return &model.PasswordResetTokenModel{
		Email:     data.Email,
		Token:     data.Token,
		CreatedAt: data.CreatedAt,
	}
}
