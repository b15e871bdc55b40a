package leaderboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Unlucky13unny/playerzero/internal/access"
	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/stats"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListLeaderboardCandidates(ctx context.Context) ([]models.LeaderboardCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardCandidate), args.Error(1)
}

func (m *MockRepository) ListSnapshotsSince(ctx context.Context, entrySince, createdSince time.Time) ([]models.StatSnapshot, error) {
	args := m.Called(ctx, entrySince, createdSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatSnapshot), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type stubFreeMode struct{ enabled bool }

func (s stubFreeMode) Enabled() bool { return s.enabled }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// now внутри текущей недели: среда 12 июня 2024
var testNow = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func weekSnapshots(userUID string, startXP, endXP int64) []models.StatSnapshot {
	return []models.StatSnapshot{
		{
			UserUID:   userUID,
			EntryDate: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 6, 9, 8, 0, 0, 0, time.UTC),
			TotalXP:   startXP,
		},
		{
			UserUID:   userUID,
			EntryDate: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC),
			TotalXP:   endXP,
		},
	}
}

func paidCandidate(uid, username string) models.LeaderboardCandidate {
	expire := testNow.AddDate(0, 1, 0)
	return models.LeaderboardCandidate{
		UserUID:              uid,
		Username:             username,
		CreatedAt:            testNow.AddDate(0, -6, 0),
		IsPaidSubscriber:     true,
		SubscriptionExpireAt: &expire,
	}
}

func TestService_Build_RankingAndGating(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	// expired — зарегистрирован полгода назад без подписки, в таблицу не попадает
	expired := models.LeaderboardCandidate{
		UserUID:   "uid-3",
		Username:  "expired",
		CreatedAt: testNow.AddDate(0, -6, 0),
	}
	candidates := []models.LeaderboardCandidate{
		paidCandidate("uid-1", "ash"),
		paidCandidate("uid-2", "misty"),
		expired,
	}

	snapshots := append(weekSnapshots("uid-1", 1000, 1500), weekSnapshots("uid-2", 1000, 3000)...)
	snapshots = append(snapshots, weekSnapshots("uid-3", 1000, 9000)...)

	cache.On("Get", "leaderboard:week:xp", mock.Anything).Return(false, nil)
	repo.On("ListLeaderboardCandidates", mock.Anything).Return(candidates, nil)
	repo.On("ListSnapshotsSince", mock.Anything, mock.Anything, mock.Anything).Return(snapshots, nil)
	cache.On("Set", "leaderboard:week:xp", mock.Anything, 5*time.Minute).Return(nil)

	service := New(repo, stubFreeMode{}, access.NewResolver(0), stats.NewEngine(0), cache, newNoopLogger())
	entries, err := service.Build(context.Background(), stats.PeriodWeek, MetricXP, testNow)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "misty", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, float64(2000), entries[0].Value)
	assert.Equal(t, "ash", entries[1].Username)
	assert.Equal(t, 2, entries[1].Rank)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Build_FreeModeIncludesExpired(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	expired := models.LeaderboardCandidate{
		UserUID:   "uid-3",
		Username:  "expired",
		CreatedAt: testNow.AddDate(0, -6, 0),
	}

	cache.On("Get", "leaderboard:week:xp", mock.Anything).Return(false, nil)
	repo.On("ListLeaderboardCandidates", mock.Anything).Return([]models.LeaderboardCandidate{expired}, nil)
	repo.On("ListSnapshotsSince", mock.Anything, mock.Anything, mock.Anything).
		Return(weekSnapshots("uid-3", 1000, 2000), nil)
	cache.On("Set", "leaderboard:week:xp", mock.Anything, 5*time.Minute).Return(nil)

	service := New(repo, stubFreeMode{enabled: true}, access.NewResolver(0), stats.NewEngine(0), cache, newNoopLogger())
	entries, err := service.Build(context.Background(), stats.PeriodWeek, MetricXP, testNow)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "expired", entries[0].Username)
}

func TestService_Build_CacheHit(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	cache.On("Get", "leaderboard:month:distance", mock.Anything).Return(true, nil)

	service := New(repo, stubFreeMode{}, access.NewResolver(0), stats.NewEngine(0), cache, newNoopLogger())
	_, err := service.Build(context.Background(), stats.PeriodMonth, MetricDistance, testNow)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "ListLeaderboardCandidates")
}

func TestService_Build_UnknownMetric(t *testing.T) {
	service := New(new(MockRepository), stubFreeMode{}, access.NewResolver(0), stats.NewEngine(0), new(MockCache), newNoopLogger())
	_, err := service.Build(context.Background(), stats.PeriodWeek, "steps", testNow)

	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestService_Build_ZeroDeltaExcluded(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	// Единственный снапшот в периоде даёт нулевую дельту, строка не попадает
	single := []models.StatSnapshot{{
		UserUID:   "uid-1",
		EntryDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
		TotalXP:   5000,
	}}

	cache.On("Get", "leaderboard:week:xp", mock.Anything).Return(false, nil)
	repo.On("ListLeaderboardCandidates", mock.Anything).
		Return([]models.LeaderboardCandidate{paidCandidate("uid-1", "ash")}, nil)
	repo.On("ListSnapshotsSince", mock.Anything, mock.Anything, mock.Anything).Return(single, nil)
	cache.On("Set", "leaderboard:week:xp", mock.Anything, 5*time.Minute).Return(nil)

	service := New(repo, stubFreeMode{}, access.NewResolver(0), stats.NewEngine(0), cache, newNoopLogger())
	entries, err := service.Build(context.Background(), stats.PeriodWeek, MetricXP, testNow)

	assert.NoError(t, err)
	assert.Empty(t, entries)
}
