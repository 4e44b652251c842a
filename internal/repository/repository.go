package repository

import (
	"context"

	"github.com/glucotrack/glucotrack/internal/database"
)

// AccountRepository handles account persistence. Find methods return
// (nil, nil) when no row matches so callers can distinguish absence from
// storage failure.
type AccountRepository interface {
	Create(ctx context.Context, account *database.Account) error
	FindByUsername(ctx context.Context, username string) (*database.Account, error)
	FindByID(ctx context.Context, id uint) (*database.Account, error)
}

// EntryRepository handles reading-set persistence.
type EntryRepository interface {
	Create(ctx context.Context, entry *database.Entry) error
	GetByID(ctx context.Context, id uint) (*database.Entry, error)
	List(ctx context.Context, accountID *uint) ([]database.Entry, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// AchievementRepository handles the per-account ledger record.
// IncrementPoints must be atomic at the storage layer: concurrent
// submissions for one account must not lose an update.
type AchievementRepository interface {
	Create(ctx context.Context, achievement *database.Achievement) error
	GetByAccountID(ctx context.Context, accountID uint) (*database.Achievement, error)
	IncrementPoints(ctx context.Context, accountID uint, delta int) error
	SetRank(ctx context.Context, accountID uint, rank string) error
}

// ChartRepository returns the read-only reference charts in their defined
// order. Implementations re-read (or re-validate) per call so a chart edit
// is picked up without a restart.
type ChartRepository interface {
	GlucoseRanges(ctx context.Context) ([]database.BloodGlucoseRange, error)
	Ranks(ctx context.Context) ([]database.AchievementRank, error)
}
