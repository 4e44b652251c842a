package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glucotrack/glucotrack/internal/database"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
)

func defaultRanges() []database.BloodGlucoseRange {
	return []database.BloodGlucoseRange{
		{Sequence: 1, MinValue: 0, MaxValue: 53, Category: "URGENT LOW", Action: "Treat immediately and seek medical help."},
		{Sequence: 2, MinValue: 54, MaxValue: 69, Category: "LOW", Action: "Eat fast-acting carbs and recheck in 15 minutes."},
		{Sequence: 3, MinValue: 70, MaxValue: 99, Category: "NORMAL", Action: "Keep up the good work."},
		{Sequence: 4, MinValue: 100, MaxValue: 125, Category: "ELEVATED", Action: "Watch your diet and recheck before your next meal."},
		{Sequence: 5, MinValue: 126, MaxValue: 199, Category: "HIGH", Action: "Take your prescribed dose and limit carbohydrate intake."},
		{Sequence: 6, MinValue: 200, MaxValue: 400, Category: "VERY HIGH", Action: "Contact your care provider today."},
	}
}

func defaultRanks() []database.AchievementRank {
	return []database.AchievementRank{
		{Name: "BRONZE", MinPoints: 0, MaxPoints: 99},
		{Name: "SILVER", MinPoints: 100, MaxPoints: 249},
		{Name: "GOLD", MinPoints: 250, MaxPoints: 499},
		{Name: "PLATINUM", MinPoints: 500, MaxPoints: 999},
	}
}

type fakeChartRepo struct {
	ranges    []database.BloodGlucoseRange
	ranks     []database.AchievementRank
	rangesErr error
	ranksErr  error
}

func newFakeChartRepo() *fakeChartRepo {
	return &fakeChartRepo{ranges: defaultRanges(), ranks: defaultRanks()}
}

func (f *fakeChartRepo) GlucoseRanges(ctx context.Context) ([]database.BloodGlucoseRange, error) {
	if f.rangesErr != nil {
		return nil, f.rangesErr
	}
	return f.ranges, nil
}

func (f *fakeChartRepo) Ranks(ctx context.Context) ([]database.AchievementRank, error) {
	if f.ranksErr != nil {
		return nil, f.ranksErr
	}
	return f.ranks, nil
}

type fakeAccountRepo struct {
	mu        sync.Mutex
	accounts  map[uint]database.Account
	createErr error
	nextID    uint
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uint]database.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *database.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.accounts {
		if existing.Username == account.Username {
			return apperrors.NewConflictError("username already exists")
		}
	}
	f.nextID++
	account.ID = f.nextID
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccountRepo) FindByUsername(ctx context.Context, username string) (*database.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.Username == username {
			copied := account
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id uint) (*database.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account, ok := f.accounts[id]; ok {
		copied := account
		return &copied, nil
	}
	return nil, nil
}

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries map[uint]database.Entry
	nextID  uint
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[uint]database.Entry)}
}

func (f *fakeEntryRepo) Create(ctx context.Context, entry *database.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	entry.ID = f.nextID
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	f.entries[entry.ID] = *entry
	return nil
}

func (f *fakeEntryRepo) GetByID(ctx context.Context, id uint) (*database.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.entries[id]; ok {
		copied := entry
		return &copied, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %d not found", id))
}

func (f *fakeEntryRepo) List(ctx context.Context, accountID *uint) ([]database.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []database.Entry
	for id := uint(1); id <= f.nextID; id++ {
		entry, ok := f.entries[id]
		if !ok {
			continue
		}
		if accountID != nil && entry.AccountID != *accountID {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (f *fakeEntryRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("entry %d not found", id))
	}
	for column, value := range fields {
		switch column {
		case "account_id":
			entry.AccountID = value.(uint)
		case "bg_morning":
			entry.BGMorning = toDecimalPtr(value)
		case "bg_afternoon":
			entry.BGAfternoon = toDecimalPtr(value)
		case "bg_evening":
			entry.BGEvening = toDecimalPtr(value)
		case "ins_morning":
			entry.InsMorning = toDecimalPtr(value)
		case "ins_afternoon":
			entry.InsAfternoon = toDecimalPtr(value)
		case "ins_evening":
			entry.InsEvening = toDecimalPtr(value)
		}
	}
	entry.UpdatedAt = time.Now()
	f.entries[id] = entry
	return nil
}

func toDecimalPtr(value interface{}) *decimal.Decimal {
	if value == nil {
		return nil
	}
	d := value.(decimal.Decimal)
	return &d
}

func (f *fakeEntryRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("entry %d not found", id))
	}
	delete(f.entries, id)
	return nil
}

// fakeAchievementRepo mirrors the storage contract: the increment is atomic
// under its lock, exactly as the real UPDATE expression is.
type fakeAchievementRepo struct {
	mu        sync.Mutex
	records   map[uint]database.Achievement
	createErr error
	nextID    uint
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{records: make(map[uint]database.Achievement)}
}

func (f *fakeAchievementRepo) Create(ctx context.Context, achievement *database.Achievement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.records[achievement.AccountID]; ok {
		return apperrors.NewConflictError("achievement record already exists")
	}
	f.nextID++
	achievement.ID = f.nextID
	f.records[achievement.AccountID] = *achievement
	return nil
}

func (f *fakeAchievementRepo) GetByAccountID(ctx context.Context, accountID uint) (*database.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record, ok := f.records[accountID]; ok {
		copied := record
		return &copied, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no achievement record for account %d", accountID))
}

func (f *fakeAchievementRepo) IncrementPoints(ctx context.Context, accountID uint, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[accountID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("no achievement record for account %d", accountID))
	}
	record.CurrentPoints += delta
	f.records[accountID] = record
	return nil
}

func (f *fakeAchievementRepo) SetRank(ctx context.Context, accountID uint, rank string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[accountID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("no achievement record for account %d", accountID))
	}
	record.CurrentRank = rank
	f.records[accountID] = record
	return nil
}

type fakeIdentityClient struct {
	mu      sync.Mutex
	payload []byte
	err     error
	calls   int
}

func (f *fakeIdentityClient) RegisterPatient(ctx context.Context, firstName, lastName, dob string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.payload != nil {
		return f.payload, nil
	}
	return []byte(`{"resourceType":"Patient","id":"42"}`), nil
}
