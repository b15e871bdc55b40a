package profile

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

func (m *MockRepository) UpsertProfile(ctx context.Context, profile models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockRepository) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
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

func fullDecision() models.AccessDecision {
	return models.AccessDecision{
		CanShowTrainerCode: true,
		CanShowSocialLinks: true,
	}
}

func storedProfile() *models.Profile {
	return &models.Profile{
		UserUID:     "uid-1",
		TrainerName: "Ash",
		TrainerCode: "123456789012",
		Instagram:   "ash_gram",
		TikTok:      "ash_tok",
		YouTube:     "ash_tube",
	}
}

func TestService_Get_Filtering(t *testing.T) {
	tests := []struct {
		name         string
		decision     models.AccessDecision
		expectCode   string
		expectSocial string
	}{
		{
			name:         "полный доступ показывает платные поля",
			decision:     fullDecision(),
			expectCode:   "123456789012",
			expectSocial: "ash_gram",
		},
		{
			name:         "без доступа платные поля скрыты",
			decision:     models.AccessDecision{},
			expectCode:   "",
			expectSocial: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			cache := new(MockCache)

			repo.On("GetAccountByUsername", mock.Anything, "ash").
				Return(&models.Account{UID: "uid-1", Username: "ash"}, nil)
			cache.On("Get", "profile:uid-1", mock.Anything).Return(false, nil)
			repo.On("GetProfile", mock.Anything, "uid-1").Return(storedProfile(), nil)
			cache.On("Set", "profile:uid-1", mock.Anything, time.Hour).Return(nil)

			service := New(repo, cache, newNoopLogger())
			p, err := service.Get(context.Background(), "ash", tt.decision)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectCode, p.TrainerCode)
			assert.Equal(t, tt.expectSocial, p.Instagram)
			// Обычные поля видны всегда
			assert.Equal(t, "Ash", p.TrainerName)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	repo.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p models.Profile) bool {
		return p.UserUID == "uid-1" &&
			p.TrainerName == "Ash" &&
			p.StartDate != nil &&
			p.StartDate.Equal(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil)
	cache.On("Invalidate", "profile:uid-1").Return(nil)

	service := New(repo, cache, newNoopLogger())
	err := service.Update(context.Background(), "uid-1", models.DummyProfile{
		TrainerName:  "Ash",
		TrainerLevel: 40,
		Team:         "valor",
		Country:      "JP",
		StartDate:    "01-03-2020",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Update_BadStartDate(t *testing.T) {
	service := New(new(MockRepository), new(MockCache), newNoopLogger())
	err := service.Update(context.Background(), "uid-1", models.DummyProfile{
		TrainerName:  "Ash",
		TrainerLevel: 40,
		Team:         "valor",
		Country:      "JP",
		StartDate:    "2020-03-01",
	})

	assert.Error(t, err)
}
