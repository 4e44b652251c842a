package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack/internal/database"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
)

// GormAccountRepository persists accounts through gorm.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Create inserts the account. A duplicate username at insert time (a race
// with the earlier uniqueness check) surfaces as a conflict.
func (r *GormAccountRepository) Create(ctx context.Context, account *database.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError("username already exists")
		}
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func (r *GormAccountRepository) FindByUsername(ctx context.Context, username string) (*database.Account, error) {
	var account database.Account
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return &account, nil
}

func (r *GormAccountRepository) FindByID(ctx context.Context, id uint) (*database.Account, error) {
	var account database.Account
	err := r.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return &account, nil
}
