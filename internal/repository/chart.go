package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack/internal/database"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
)

// GormChartRepository reads the reference charts from postgres on every
// call. The charts are small; per-call reads keep runtime edits visible.
type GormChartRepository struct {
	db *gorm.DB
}

func NewChartRepository(db *gorm.DB) *GormChartRepository {
	return &GormChartRepository{db: db}
}

func (r *GormChartRepository) GlucoseRanges(ctx context.Context) ([]database.BloodGlucoseRange, error) {
	var ranges []database.BloodGlucoseRange
	if err := r.db.WithContext(ctx).Order("sequence asc").Find(&ranges).Error; err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return ranges, nil
}

func (r *GormChartRepository) Ranks(ctx context.Context) ([]database.AchievementRank, error) {
	var ranks []database.AchievementRank
	if err := r.db.WithContext(ctx).Order("min_points asc").Find(&ranks).Error; err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return ranks, nil
}
