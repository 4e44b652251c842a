package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucotrack/glucotrack/internal/database"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
)

func newAchievementFixture() (*AchievementService, *fakeAchievementRepo) {
	repo := newFakeAchievementRepo()
	return NewAchievementService(repo, newFakeChartRepo()), repo
}

func TestBootstrapStartsAtLowestRank(t *testing.T) {
	svc, repo := newAchievementFixture()
	ctx := context.Background()

	require.NoError(t, svc.Bootstrap(ctx, 1))

	record, err := repo.GetByAccountID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "BRONZE", record.CurrentRank)
	assert.Equal(t, 0, record.CurrentPoints)
}

func TestAddPointsAccumulates(t *testing.T) {
	svc, _ := newAchievementFixture()
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx, 1))

	record, err := svc.AddPoints(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, record.CurrentPoints)
	assert.Equal(t, "BRONZE", record.CurrentRank)
}

func TestAddPointsCrossesRank(t *testing.T) {
	svc, _ := newAchievementFixture()
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx, 1))

	var record *database.Achievement
	var err error
	for i := 0; i < 20; i++ {
		record, err = svc.AddPoints(ctx, 1, 5)
		require.NoError(t, err)
	}
	assert.Equal(t, 100, record.CurrentPoints)
	assert.Equal(t, "SILVER", record.CurrentRank)
}

func TestAddPointsWithoutLedger(t *testing.T) {
	svc, _ := newAchievementFixture()

	_, err := svc.AddPoints(context.Background(), 42, 5)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestConcurrentAddPointsLosesNothing(t *testing.T) {
	svc, repo := newAchievementFixture()
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx, 1))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AddPoints(ctx, 1, 5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	record, err := repo.GetByAccountID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, workers*5, record.CurrentPoints)
}

func TestRankProgress(t *testing.T) {
	svc, _ := newAchievementFixture()
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx, 1))

	progress, err := svc.RankProgress(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "BRONZE", progress.Rank)
	assert.Equal(t, 0, progress.Points)
	assert.False(t, progress.AtMaxRank)
	// (99 - 0) + the 5-point step into the next tier.
	assert.Equal(t, 104, progress.PointsToNext)
}

func TestRankProgressAtMaxRank(t *testing.T) {
	repo := newFakeAchievementRepo()
	svc := NewAchievementService(repo, newFakeChartRepo())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &database.Achievement{
		AccountID:     1,
		CurrentRank:   "PLATINUM",
		CurrentPoints: 600,
	}))

	progress, err := svc.RankProgress(ctx, 1)
	require.NoError(t, err)
	assert.True(t, progress.AtMaxRank)
	assert.Equal(t, 0, progress.PointsToNext)
}

func TestRankProgressClampsNegative(t *testing.T) {
	repo := newFakeAchievementRepo()
	svc := NewAchievementService(repo, newFakeChartRepo())
	ctx := context.Background()

	// A chart edit can leave stored points above the tier ceiling.
	require.NoError(t, repo.Create(ctx, &database.Achievement{
		AccountID:     1,
		CurrentRank:   "BRONZE",
		CurrentPoints: 120,
	}))

	progress, err := svc.RankProgress(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.PointsToNext)
}

func TestRankProgressWithoutLedger(t *testing.T) {
	svc, _ := newAchievementFixture()

	_, err := svc.RankProgress(context.Background(), 7)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
