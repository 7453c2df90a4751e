package postgres

import (
	"context"

	"unica/internal/domain/entity"
	"unica/internal/domain/repository"
	"unica/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// twoFactorRepository implements the domain.TwoFactorRepository interface.
type twoFactorRepository struct {
	db *gorm.DB
}

// NewTwoFactorRepository is the constructor for twoFactorRepository.
func NewTwoFactorRepository(db *gorm.DB) repository.TwoFactorRepository {
	return &twoFactorRepository{db: db}
}

// FindByAccountID retrieves the two-factor record for an account. A missing
// record means two-factor auth is disabled, reported as ErrTwoFactorNotFound.
func (repo *twoFactorRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.TwoFactorRecord, error) {
	var recordM model.TwoFactorModel
	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&recordM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTwoFactorNotFound
		}

		return nil, errors.WithStack(err)
	}

	return &entity.TwoFactorRecord{
		AccountID: recordM.AccountID,
		CreatedAt: recordM.CreatedAt,
	}, nil
}
