package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel mirrors the 'refresh_tokens' table. The opaque token value
// is the lookup key, so it carries the unique index.
type RefreshTokenModel struct {
	ID           uint      `gorm:"primary_key;auto_increment"`
	Token        string    `gorm:"type:varchar(512);uniqueIndex;not null"`
	AccountID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AccountEmail string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// PasswordResetTokenModel mirrors the 'password_reset_tokens' table. One pending
// reset per email: a later request for the same address replaces the earlier row.
type PasswordResetTokenModel struct {
	Email     string `gorm:"type:varchar(255);primary_key"`
	Token     string `gorm:"type:varchar(512);not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}

// TwoFactorModel mirrors the 'two_factor_settings' table. Presence of a row
// means two-factor auth is enabled for the account.
type TwoFactorModel struct {
	AccountID uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TwoFactorModel) TableName() string {
	return "two_factor_settings"
}
