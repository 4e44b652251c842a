package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack/internal/database"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
)

// GormAchievementRepository persists ledger records through gorm.
type GormAchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *GormAchievementRepository {
	return &GormAchievementRepository{db: db}
}

func (r *GormAchievementRepository) Create(ctx context.Context, achievement *database.Achievement) error {
	if err := r.db.WithContext(ctx).Create(achievement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError(fmt.Sprintf("achievement record already exists for account %d", achievement.AccountID))
		}
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func (r *GormAchievementRepository) GetByAccountID(ctx context.Context, accountID uint) (*database.Achievement, error) {
	var achievement database.Achievement
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&achievement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no achievement record for account %d", accountID))
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return &achievement, nil
}

// IncrementPoints adds delta in a single UPDATE expression so concurrent
// submissions for the same account cannot lose an update.
func (r *GormAchievementRepository) IncrementPoints(ctx context.Context, accountID uint, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&database.Achievement{}).
		Where("account_id = ?", accountID).
		UpdateColumn("current_points", gorm.Expr("current_points + ?", delta))

	if result.Error != nil {
		return apperrors.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("no achievement record for account %d", accountID))
	}
	return nil
}

func (r *GormAchievementRepository) SetRank(ctx context.Context, accountID uint, rank string) error {
	result := r.db.WithContext(ctx).
		Model(&database.Achievement{}).
		Where("account_id = ?", accountID).
		UpdateColumn("current_rank", rank)

	if result.Error != nil {
		return apperrors.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("no achievement record for account %d", accountID))
	}
	return nil
}
