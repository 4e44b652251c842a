package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack/internal/database"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
)

// GormEntryRepository persists reading sets through gorm.
type GormEntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

func (r *GormEntryRepository) Create(ctx context.Context, entry *database.Entry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func (r *GormEntryRepository) GetByID(ctx context.Context, id uint) (*database.Entry, error) {
	var entry database.Entry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %d not found", id))
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return &entry, nil
}

// List returns entries in creation order, optionally filtered by account.
// Callers validate the account before filtering; an unknown account must
// not silently yield an empty list.
func (r *GormEntryRepository) List(ctx context.Context, accountID *uint) ([]database.Entry, error) {
	var entries []database.Entry
	query := r.db.WithContext(ctx).Order("created_at asc")
	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return entries, nil
}

// UpdateFields overwrites only the given columns.
func (r *GormEntryRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&database.Entry{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return apperrors.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("entry %d not found", id))
	}
	return nil
}

func (r *GormEntryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&database.Entry{}, id)
	if result.Error != nil {
		return apperrors.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("entry %d not found", id))
	}
	return nil
}
