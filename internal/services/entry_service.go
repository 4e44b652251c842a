package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/glucotrack/glucotrack/internal/database"
	"github.com/glucotrack/glucotrack/internal/domain"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
	"github.com/glucotrack/glucotrack/internal/interfaces"
	"github.com/glucotrack/glucotrack/internal/logger"
	"github.com/glucotrack/glucotrack/internal/repository"
)

// entryPoints is the fixed achievement award per accepted submission.
const entryPoints = 5

// readingPlaces is the stored precision, matching clinical reporting
// convention.
const readingPlaces = 2

// EntryService persists daily reading sets. Each accepted write awards
// achievement points and returns classification summaries for the glucose
// values that were present.
type EntryService struct {
	entries      repository.EntryRepository
	accounts     repository.AccountRepository
	achievements interfaces.AchievementServiceInterface
	classifier   interfaces.ClassificationServiceInterface
}

func NewEntryService(
	entries repository.EntryRepository,
	accounts repository.AccountRepository,
	achievements interfaces.AchievementServiceInterface,
	classifier interfaces.ClassificationServiceInterface,
) *EntryService {
	return &EntryService{
		entries:      entries,
		accounts:     accounts,
		achievements: achievements,
		classifier:   classifier,
	}
}

func roundReading(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	rounded := v.Round(readingPlaces)
	return &rounded
}

// Create validates the account, persists the entry with server timestamps,
// awards the per-submission points and builds the classification summary.
func (s *EntryService) Create(ctx context.Context, accountID uint, readings domain.EntryReadings) (*domain.EntrySummary, error) {
	if accountID == 0 {
		return nil, apperrors.NewValidationError("account_id is required")
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid account_id: %d", accountID))
	}

	entry := &database.Entry{
		AccountID:    accountID,
		BGMorning:    roundReading(readings.BGMorning),
		BGAfternoon:  roundReading(readings.BGAfternoon),
		BGEvening:    roundReading(readings.BGEvening),
		InsMorning:   roundReading(readings.InsMorning),
		InsAfternoon: roundReading(readings.InsAfternoon),
		InsEvening:   roundReading(readings.InsEvening),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	if _, err := s.achievements.AddPoints(ctx, accountID, entryPoints); err != nil {
		// An account whose ledger was never bootstrapped can still record
		// readings; the entry itself is already persisted.
		logger.Warn("Point award failed for entry submission",
			"account_id", accountID, "entry_id", entry.ID, "error", err)
	}

	summary := &domain.EntrySummary{
		ID:           entry.ID,
		AccountID:    entry.AccountID,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
		BGMorning:    entry.BGMorning,
		BGAfternoon:  entry.BGAfternoon,
		BGEvening:    entry.BGEvening,
		InsMorning:   entry.InsMorning,
		InsAfternoon: entry.InsAfternoon,
		InsEvening:   entry.InsEvening,
	}
	summary.BGMorningMessage = s.slotMessage(ctx, "BG Morning", entry.BGMorning)
	summary.BGAfternoonMessage = s.slotMessage(ctx, "BG Afternoon", entry.BGAfternoon)
	summary.BGEveningMessage = s.slotMessage(ctx, "BG Evening", entry.BGEvening)

	return summary, nil
}

// slotMessage classifies opportunistically: a nil reading yields no message
// and a chart read failure degrades to none rather than failing a write
// that already happened.
func (s *EntryService) slotMessage(ctx context.Context, label string, value *decimal.Decimal) string {
	if value == nil {
		return ""
	}
	message, err := s.classifier.SlotMessage(ctx, label, *value)
	if err != nil {
		logger.Warn("Classification unavailable", "label", label, "error", err)
		return ""
	}
	return message
}

func (s *EntryService) Get(ctx context.Context, id uint) (*database.Entry, error) {
	return s.entries.GetByID(ctx, id)
}

// List returns all entries, or one account's entries when a filter is
// given. An unknown account is a validation failure, never an empty list:
// callers need to tell "no entries" apart from "no such account".
func (s *EntryService) List(ctx context.Context, accountID *uint) ([]database.Entry, error) {
	if accountID != nil {
		account, err := s.accounts.FindByID(ctx, *accountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid account_id: %d", *accountID))
		}
	}
	return s.entries.List(ctx, accountID)
}

// Update applies an explicit partial merge: only fields present in the
// request are touched. A present account_id must resolve before any field
// is changed.
func (s *EntryService) Update(ctx context.Context, id uint, update domain.EntryUpdate) (*database.Entry, error) {
	fields := make(map[string]interface{})

	if update.AccountID != nil {
		account, err := s.accounts.FindByID(ctx, *update.AccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid account_id: %d", *update.AccountID))
		}
		fields["account_id"] = *update.AccountID
	}

	applyOptional(fields, "bg_morning", update.BGMorning)
	applyOptional(fields, "bg_afternoon", update.BGAfternoon)
	applyOptional(fields, "bg_evening", update.BGEvening)
	applyOptional(fields, "ins_morning", update.InsMorning)
	applyOptional(fields, "ins_afternoon", update.InsAfternoon)
	applyOptional(fields, "ins_evening", update.InsEvening)

	if len(fields) == 0 {
		return s.entries.GetByID(ctx, id)
	}

	if err := s.entries.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.entries.GetByID(ctx, id)
}

// applyOptional maps the three optional-field states: absent leaves the
// column alone, explicit null clears it, a value overwrites it.
func applyOptional(fields map[string]interface{}, column string, value domain.OptionalDecimal) {
	if !value.Set {
		return
	}
	if !value.Valid {
		fields[column] = nil
		return
	}
	fields[column] = value.Value.Round(readingPlaces)
}

// Delete removes the entry; deleting an already-deleted id is NotFound.
func (s *EntryService) Delete(ctx context.Context, id uint) error {
	return s.entries.Delete(ctx, id)
}
