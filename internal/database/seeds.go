package database

import (
	"sync"

	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack/internal/database/migrations"
)

var seedOnce sync.Once

// registerSeeds adds the chart seed data to the migration registry. The
// charts are reference data: read at request time, never written by the
// application.
func registerSeeds() {
	seedOnce.Do(func() {
		migrations.Register("001_seed_blood_glucose_ranges", seedBloodGlucoseRanges, nil)
		migrations.Register("002_seed_achievement_ranks", seedAchievementRanks, nil)
	})
}

func seedBloodGlucoseRanges(db *gorm.DB) error {
	ranges := []BloodGlucoseRange{
		{Sequence: 1, MinValue: 0, MaxValue: 53, Category: "URGENT LOW", Action: "Treat immediately and seek medical help."},
		{Sequence: 2, MinValue: 54, MaxValue: 69, Category: "LOW", Action: "Eat fast-acting carbs and recheck in 15 minutes."},
		{Sequence: 3, MinValue: 70, MaxValue: 99, Category: "NORMAL", Action: "Keep up the good work."},
		{Sequence: 4, MinValue: 100, MaxValue: 125, Category: "ELEVATED", Action: "Watch your diet and recheck before your next meal."},
		{Sequence: 5, MinValue: 126, MaxValue: 199, Category: "HIGH", Action: "Take your prescribed dose and limit carbohydrate intake."},
		{Sequence: 6, MinValue: 200, MaxValue: 400, Category: "VERY HIGH", Action: "Contact your care provider today."},
	}
	return db.Create(&ranges).Error
}

func seedAchievementRanks(db *gorm.DB) error {
	ranks := []AchievementRank{
		{Name: "BRONZE", MinPoints: 0, MaxPoints: 99},
		{Name: "SILVER", MinPoints: 100, MaxPoints: 249},
		{Name: "GOLD", MinPoints: 250, MaxPoints: 499},
		{Name: "PLATINUM", MinPoints: 500, MaxPoints: 999},
	}
	return db.Create(&ranks).Error
}
