package snapshot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateSnapshot(ctx context.Context, snap models.StatSnapshot) (int, error) {
	args := m.Called(ctx, snap)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListSnapshots(ctx context.Context, userUID string) ([]models.StatSnapshot, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatSnapshot), args.Error(1)
}

func (m *MockRepository) LatestSnapshot(ctx context.Context, userUID string) (*models.StatSnapshot, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatSnapshot), args.Error(1)
}

func (m *MockRepository) CountSnapshotsForDate(ctx context.Context, userUID string, entryDate time.Time) (int, error) {
	args := m.Called(ctx, userUID, entryDate)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveSnapshot(ctx context.Context, id int, userUID string) (int, error) {
	args := m.Called(ctx, id, userUID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) TrimScreenshots(ctx context.Context, userUID string, keep int) error {
	args := m.Called(ctx, userUID, keep)
	return args.Error(0)
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

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validRequest() models.DummySnapshot {
	return models.DummySnapshot{
		EntryDate:            "15-06-2024",
		TotalXP:              100000,
		PokemonCaught:        2500,
		DistanceWalked:       320.5,
		PokestopsVisited:     1800,
		UniquePokedexEntries: 400,
		TrainerLevel:         38,
	}
}

func TestService_Create(t *testing.T) {
	latest := &models.StatSnapshot{
		TotalXP:              90000,
		PokemonCaught:        2000,
		DistanceWalked:       300,
		PokestopsVisited:     1500,
		UniquePokedexEntries: 380,
	}

	tests := []struct {
		name        string
		req         models.DummySnapshot
		setupMocks  func(*MockRepository, *MockCache)
		expectedID  int
		expectedErr error
	}{
		{
			name: "успешное создание снапшота",
			req:  validRequest(),
			setupMocks: func(r *MockRepository, c *MockCache) {
				r.On("CountSnapshotsForDate", mock.Anything, "uid-1", mock.Anything).Return(0, nil)
				r.On("LatestSnapshot", mock.Anything, "uid-1").Return(latest, nil)
				r.On("CreateSnapshot", mock.Anything, mock.AnythingOfType("models.StatSnapshot")).Return(42, nil)
				r.On("TrimScreenshots", mock.Anything, "uid-1", 7).Return(nil)
				c.On("Invalidate", "snapshots:uid-1").Return(nil)
			},
			expectedID: 42,
		},
		{
			name: "первый снапшот аккаунта",
			req:  validRequest(),
			setupMocks: func(r *MockRepository, c *MockCache) {
				r.On("CountSnapshotsForDate", mock.Anything, "uid-1", mock.Anything).Return(0, nil)
				r.On("LatestSnapshot", mock.Anything, "uid-1").Return(nil, nil)
				r.On("CreateSnapshot", mock.Anything, mock.AnythingOfType("models.StatSnapshot")).Return(1, nil)
				r.On("TrimScreenshots", mock.Anything, "uid-1", 7).Return(nil)
				c.On("Invalidate", "snapshots:uid-1").Return(nil)
			},
			expectedID: 1,
		},
		{
			name: "превышен суточный лимит",
			req:  validRequest(),
			setupMocks: func(r *MockRepository, _ *MockCache) {
				r.On("CountSnapshotsForDate", mock.Anything, "uid-1", mock.Anything).Return(1, nil)
			},
			expectedErr: ErrUploadLimit,
		},
		{
			name: "счётчик уменьшился",
			req: models.DummySnapshot{
				EntryDate:            "15-06-2024",
				TotalXP:              80000, // меньше последнего значения
				PokemonCaught:        2500,
				DistanceWalked:       320.5,
				PokestopsVisited:     1800,
				UniquePokedexEntries: 400,
				TrainerLevel:         38,
			},
			setupMocks: func(r *MockRepository, _ *MockCache) {
				r.On("CountSnapshotsForDate", mock.Anything, "uid-1", mock.Anything).Return(0, nil)
				r.On("LatestSnapshot", mock.Anything, "uid-1").Return(latest, nil)
			},
			expectedErr: ErrNotMonotonic,
		},
		{
			name: "некорректная дата",
			req: models.DummySnapshot{
				EntryDate: "2024-06-15",
				TotalXP:   100000,
			},
			setupMocks: func(_ *MockRepository, _ *MockCache) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			cache := new(MockCache)
			tt.setupMocks(repo, cache)

			service := New(repo, cache, newNoopLogger(), 1, 7)
			id, err := service.Create(context.Background(), "uid-1", tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else if tt.expectedID != 0 {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			} else {
				assert.Error(t, err)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_Create_StatusPending(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	repo.On("CountSnapshotsForDate", mock.Anything, "uid-1", mock.Anything).Return(0, nil)
	repo.On("LatestSnapshot", mock.Anything, "uid-1").Return(nil, nil)
	repo.On("CreateSnapshot", mock.Anything, mock.MatchedBy(func(snap models.StatSnapshot) bool {
		return snap.VerificationStatus == models.VerificationPending &&
			snap.UserUID == "uid-1" &&
			snap.EntryDate.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	})).Return(7, nil)
	repo.On("TrimScreenshots", mock.Anything, "uid-1", 7).Return(nil)
	cache.On("Invalidate", "snapshots:uid-1").Return(nil)

	service := New(repo, cache, newNoopLogger(), 1, 7)
	id, err := service.Create(context.Background(), "uid-1", validRequest())

	assert.NoError(t, err)
	assert.Equal(t, 7, id)
	repo.AssertExpectations(t)
}

func TestService_List_CacheMiss(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	stored := []models.StatSnapshot{{ID: 1, UserUID: "uid-1"}}
	cache.On("Get", "snapshots:uid-1", mock.Anything).Return(false, nil)
	repo.On("ListSnapshots", mock.Anything, "uid-1").Return(stored, nil)
	cache.On("Set", "snapshots:uid-1", stored, 5*time.Minute).Return(nil)

	service := New(repo, cache, newNoopLogger(), 1, 7)
	result, err := service.List(context.Background(), "uid-1")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Remove(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	cache.On("Invalidate", "snapshots:uid-1").Return(nil)
	repo.On("RemoveSnapshot", mock.Anything, 5, "uid-1").Return(1, nil)

	service := New(repo, cache, newNoopLogger(), 1, 7)
	removed, err := service.Remove(context.Background(), 5, "uid-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, removed)
	repo.AssertExpectations(t)
}
