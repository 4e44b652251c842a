package services

import (
	"context"
	"errors"

	"github.com/glucotrack/glucotrack/internal/database"
	"github.com/glucotrack/glucotrack/internal/domain"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
	"github.com/glucotrack/glucotrack/internal/repository"
)

// rankStepBonus is the fixed point cost of crossing into the next tier,
// added on top of the distance to the current tier's ceiling.
const rankStepBonus = 5

// MaxRankSentinel replaces the numeric points-to-next-rank value for
// accounts already at the top rank.
const MaxRankSentinel = "at max rank"

// AchievementService owns the per-account ledger: rank name plus running
// point total. AddPoints is the only mutator.
type AchievementService struct {
	repo   repository.AchievementRepository
	charts repository.ChartRepository
}

func NewAchievementService(repo repository.AchievementRepository, charts repository.ChartRepository) *AchievementService {
	return &AchievementService{repo: repo, charts: charts}
}

// Bootstrap creates the ledger record for a freshly provisioned account at
// the lowest rank with zero points.
func (s *AchievementService) Bootstrap(ctx context.Context, accountID uint) error {
	ranks, err := s.charts.Ranks(ctx)
	if err != nil {
		return err
	}
	if len(ranks) == 0 {
		return apperrors.NewInternalError(errors.New("rank chart is empty"))
	}

	achievement := &database.Achievement{
		AccountID:     accountID,
		CurrentRank:   ranks[0].Name,
		CurrentPoints: 0,
	}
	return s.repo.Create(ctx, achievement)
}

// AddPoints increments the point total atomically at the storage layer,
// then re-reads the total and recomputes the rank name. Concurrent
// submissions may each write the rank column; the total itself can never
// lose an update.
func (s *AchievementService) AddPoints(ctx context.Context, accountID uint, delta int) (*database.Achievement, error) {
	if err := s.repo.IncrementPoints(ctx, accountID, delta); err != nil {
		return nil, err
	}

	achievement, err := s.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	rank, err := s.rankForPoints(ctx, achievement.CurrentPoints)
	if err != nil {
		return nil, err
	}
	if rank != "" && rank != achievement.CurrentRank {
		if err := s.repo.SetRank(ctx, accountID, rank); err != nil {
			return nil, err
		}
		achievement.CurrentRank = rank
	}

	return achievement, nil
}

// RankProgress reports the account's rank, points and the points still
// needed to reach the next rank. At the top rank the numeric distance is
// meaningless; AtMaxRank is set instead.
func (s *AchievementService) RankProgress(ctx context.Context, accountID uint) (domain.RankProgress, error) {
	achievement, err := s.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		return domain.RankProgress{}, err
	}

	ranks, err := s.charts.Ranks(ctx)
	if err != nil {
		return domain.RankProgress{}, err
	}
	if len(ranks) == 0 {
		return domain.RankProgress{}, apperrors.NewInternalError(errors.New("rank chart is empty"))
	}

	progress := domain.RankProgress{
		Rank:   achievement.CurrentRank,
		Points: achievement.CurrentPoints,
	}

	if achievement.CurrentRank == ranks[len(ranks)-1].Name {
		progress.AtMaxRank = true
		return progress, nil
	}

	var current *database.AchievementRank
	for i := range ranks {
		if ranks[i].Name == achievement.CurrentRank {
			current = &ranks[i]
			break
		}
	}
	if current == nil {
		return domain.RankProgress{}, apperrors.NewInternalError(
			errors.New("ledger rank missing from rank chart"))
	}

	// A chart edit can leave the stored total above the tier ceiling;
	// never report a negative distance.
	toNext := (current.MaxPoints - achievement.CurrentPoints) + rankStepBonus
	if toNext < 0 {
		toNext = 0
	}
	progress.PointsToNext = toNext

	return progress, nil
}

// rankForPoints returns the name of the rank whose inclusive bounds contain
// points, or the top rank when points exceed the chart.
func (s *AchievementService) rankForPoints(ctx context.Context, points int) (string, error) {
	ranks, err := s.charts.Ranks(ctx)
	if err != nil {
		return "", err
	}
	if len(ranks) == 0 {
		return "", nil
	}

	for _, r := range ranks {
		if points >= r.MinPoints && points <= r.MaxPoints {
			return r.Name, nil
		}
	}
	return ranks[len(ranks)-1].Name, nil
}
