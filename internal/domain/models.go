package domain

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"
)

// Registration carries the fields required to provision a new account.
// Username, Password, FirstName, LastName and DOB (YYYY-MM-DD) are
// mandatory; MiddleName defaults to empty.
type Registration struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	FirstName  string `json:"firstname"`
	MiddleName string `json:"middlename"`
	LastName   string `json:"lastname"`
	DOB        string `json:"dob"`
}

// AuthenticatedUser is the safe subset of an account returned by a
// successful login check.
type AuthenticatedUser struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// Classification is the result of matching a rounded reading against the
// blood glucose range chart.
type Classification struct {
	Value    int64
	Category string
	Action   string
}

// RankProgress reports an account's position in the achievement ladder.
// AtMaxRank distinguishes the top rank from a numeric points-to-next value.
type RankProgress struct {
	Rank         string
	Points       int
	PointsToNext int
	AtMaxRank    bool
}

// EntryReadings are the optional decimal values accepted on entry creation.
type EntryReadings struct {
	BGMorning    *decimal.Decimal `json:"bg_morning"`
	BGAfternoon  *decimal.Decimal `json:"bg_afternoon"`
	BGEvening    *decimal.Decimal `json:"bg_evening"`
	InsMorning   *decimal.Decimal `json:"ins_morning"`
	InsAfternoon *decimal.Decimal `json:"ins_afternoon"`
	InsEvening   *decimal.Decimal `json:"ins_evening"`
}

// EntrySummary is what entry creation returns: the stored values plus one
// classification message per glucose reading that was present.
type EntrySummary struct {
	ID                 uint             `json:"id"`
	AccountID          uint             `json:"account_id"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	BGMorning          *decimal.Decimal `json:"bg_morning"`
	BGAfternoon        *decimal.Decimal `json:"bg_afternoon"`
	BGEvening          *decimal.Decimal `json:"bg_evening"`
	InsMorning         *decimal.Decimal `json:"ins_morning"`
	InsAfternoon       *decimal.Decimal `json:"ins_afternoon"`
	InsEvening         *decimal.Decimal `json:"ins_evening"`
	BGMorningMessage   string           `json:"bg_morning_message,omitempty"`
	BGAfternoonMessage string           `json:"bg_afternoon_message,omitempty"`
	BGEveningMessage   string           `json:"bg_evening_message,omitempty"`
}

// OptionalDecimal distinguishes "field absent" from "field explicitly null"
// in partial updates. Absence leaves the stored value unchanged; an explicit
// null clears it.
type OptionalDecimal struct {
	Set   bool
	Valid bool
	Value decimal.Decimal
}

func (o *OptionalDecimal) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := o.Value.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// EntryUpdate is an explicit partial update: only fields carrying Set=true
// are applied.
type EntryUpdate struct {
	AccountID    *uint           `json:"account_id"`
	BGMorning    OptionalDecimal `json:"bg_morning"`
	BGAfternoon  OptionalDecimal `json:"bg_afternoon"`
	BGEvening    OptionalDecimal `json:"bg_evening"`
	InsMorning   OptionalDecimal `json:"ins_morning"`
	InsAfternoon OptionalDecimal `json:"ins_afternoon"`
	InsEvening   OptionalDecimal `json:"ins_evening"`
}
