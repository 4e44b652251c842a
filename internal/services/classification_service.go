package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/glucotrack/glucotrack/internal/domain"
	"github.com/glucotrack/glucotrack/internal/repository"
)

// missMessage is what callers see when a reading falls outside every chart
// range. The chart is not guaranteed exhaustive, so a miss is a result, not
// an error.
const missMessage = "invalid value"

// ClassificationService matches glucose readings against the range chart.
type ClassificationService struct {
	charts repository.ChartRepository
}

func NewClassificationService(charts repository.ChartRepository) *ClassificationService {
	return &ClassificationService{charts: charts}
}

// Classify rounds the reading to the nearest whole unit (ties round away
// from zero, so 95.5 becomes 96 and 94.5 becomes 95) and returns the first
// chart range whose inclusive bounds contain it. The second return value is
// false on a classification miss.
func (s *ClassificationService) Classify(ctx context.Context, value decimal.Decimal) (domain.Classification, bool, error) {
	rounded := value.Round(0).IntPart()

	ranges, err := s.charts.GlucoseRanges(ctx)
	if err != nil {
		return domain.Classification{}, false, err
	}

	for _, r := range ranges {
		if rounded >= r.MinValue && rounded <= r.MaxValue {
			return domain.Classification{
				Value:    rounded,
				Category: r.Category,
				Action:   r.Action,
			}, true, nil
		}
	}

	return domain.Classification{Value: rounded}, false, nil
}

// Message formats the plain variant: category and suggested action without
// a time-of-day label.
func (s *ClassificationService) Message(ctx context.Context, value decimal.Decimal) (string, error) {
	classification, ok, err := s.Classify(ctx, value)
	if err != nil {
		return "", err
	}
	if !ok {
		return missMessage, nil
	}
	return fmt.Sprintf("%s - %s", classification.Category, classification.Action), nil
}

// SlotMessage formats the per-time-of-day variant, e.g.
// "BG Morning: reading of 96 is NORMAL. Keep up the good work."
func (s *ClassificationService) SlotMessage(ctx context.Context, label string, value decimal.Decimal) (string, error) {
	classification, ok, err := s.Classify(ctx, value)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("%s: %s", label, missMessage), nil
	}
	return fmt.Sprintf("%s: reading of %d is %s. %s",
		label, classification.Value, classification.Category, classification.Action), nil
}
