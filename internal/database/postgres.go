package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack/internal/config"
	"github.com/glucotrack/glucotrack/internal/database/migrations"
)

// Account is created once by the provisioning pipeline and never deleted.
// FHIRResponse is the raw identity-service payload kept for audit; it is
// stored verbatim and never parsed.
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password     string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never plaintext
	FirstName    string    `gorm:"size:50" json:"first_name"`
	MiddleName   string    `gorm:"size:50" json:"middle_name"`
	LastName     string    `gorm:"size:50" json:"last_name"`
	DOB          time.Time `gorm:"type:date" json:"dob"`
	FHIRResponse string    `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Entry is one reading set: up to three glucose and three insulin values,
// each optional, two fractional digits. Timestamps are server-assigned.
type Entry struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	AccountID    uint             `gorm:"index;not null" json:"account_id"`
	Account      Account          `json:"-"`
	BGMorning    *decimal.Decimal `gorm:"type:numeric(5,2)" json:"bg_morning"`
	BGAfternoon  *decimal.Decimal `gorm:"type:numeric(5,2)" json:"bg_afternoon"`
	BGEvening    *decimal.Decimal `gorm:"type:numeric(5,2)" json:"bg_evening"`
	InsMorning   *decimal.Decimal `gorm:"type:numeric(5,2)" json:"ins_morning"`
	InsAfternoon *decimal.Decimal `gorm:"type:numeric(5,2)" json:"ins_afternoon"`
	InsEvening   *decimal.Decimal `gorm:"type:numeric(5,2)" json:"ins_evening"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Achievement is the per-account ledger record: current rank plus running
// point total. Exactly one per account, created at provisioning time.
type Achievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AccountID     uint      `gorm:"uniqueIndex;not null" json:"account_id"`
	CurrentRank   string    `gorm:"size:20;not null" json:"current_rank"`
	CurrentPoints int       `gorm:"not null;default:0" json:"current_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BloodGlucoseRange is one row of the read-only classification chart.
type BloodGlucoseRange struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Sequence int    `gorm:"uniqueIndex;not null" json:"sequence"`
	MinValue int64  `gorm:"not null" json:"min_value"`
	MaxValue int64  `gorm:"not null" json:"max_value"`
	Category string `gorm:"size:30;not null" json:"category"`
	Action   string `gorm:"size:255;not null" json:"action"`
}

// AchievementRank is one row of the read-only rank chart.
type AchievementRank struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:20;uniqueIndex;not null" json:"name"`
	MinPoints int    `gorm:"not null" json:"min_points"`
	MaxPoints int    `gorm:"not null" json:"max_points"`
}

// New opens the postgres connection, migrates the schema and seeds the
// charts. TranslateError maps driver duplicate-key failures onto
// gorm.ErrDuplicatedKey so the repositories can detect username races.
func New(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&Account{},
		&Entry{},
		&Achievement{},
		&BloodGlucoseRange{},
		&AchievementRank{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	registerSeeds()
	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
