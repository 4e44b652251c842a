package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/glucotrack/glucotrack/internal/database"
	"github.com/glucotrack/glucotrack/internal/domain"
)

// AccountServiceInterface defines the contract for account provisioning and
// the login check.
type AccountServiceInterface interface {
	Register(ctx context.Context, registration domain.Registration) (uint, error)
	Authenticate(ctx context.Context, username, password string) (*domain.AuthenticatedUser, error)
}

// EntryServiceInterface defines the contract for reading-set operations.
type EntryServiceInterface interface {
	Create(ctx context.Context, accountID uint, readings domain.EntryReadings) (*domain.EntrySummary, error)
	Get(ctx context.Context, id uint) (*database.Entry, error)
	List(ctx context.Context, accountID *uint) ([]database.Entry, error)
	Update(ctx context.Context, id uint, update domain.EntryUpdate) (*database.Entry, error)
	Delete(ctx context.Context, id uint) error
}

// AchievementServiceInterface defines the contract for the achievement
// ledger.
type AchievementServiceInterface interface {
	Bootstrap(ctx context.Context, accountID uint) error
	AddPoints(ctx context.Context, accountID uint, delta int) (*database.Achievement, error)
	RankProgress(ctx context.Context, accountID uint) (domain.RankProgress, error)
}

// ClassificationServiceInterface defines the contract for classifying
// glucose readings against the range chart.
type ClassificationServiceInterface interface {
	Classify(ctx context.Context, value decimal.Decimal) (domain.Classification, bool, error)
	Message(ctx context.Context, value decimal.Decimal) (string, error)
	SlotMessage(ctx context.Context, label string, value decimal.Decimal) (string, error)
}
