package progress

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/stats"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockRepository) ListSnapshots(ctx context.Context, userUID string) ([]models.StatSnapshot, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatSnapshot), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name      string
		req       models.DummyDeltaRequest
		expected  stats.PeriodKind
		expectErr bool
	}{
		{
			name:     "текущая неделя",
			req:      models.DummyDeltaRequest{Period: "week"},
			expected: stats.PeriodWeek,
		},
		{
			name:     "текущий месяц",
			req:      models.DummyDeltaRequest{Period: "month"},
			expected: stats.PeriodMonth,
		},
		{
			name:     "всё время",
			req:      models.DummyDeltaRequest{Period: "all"},
			expected: stats.PeriodAllTime,
		},
		{
			name: "явный диапазон",
			req: models.DummyDeltaRequest{
				Period:    "range",
				StartDate: "01-06-2024",
				EndDate:   "15-06-2024",
			},
			expected: stats.PeriodRange,
		},
		{
			name: "конец раньше начала",
			req: models.DummyDeltaRequest{
				Period:    "range",
				StartDate: "15-06-2024",
				EndDate:   "01-06-2024",
			},
			expectErr: true,
		},
		{
			name: "некорректная дата начала",
			req: models.DummyDeltaRequest{
				Period:    "range",
				StartDate: "2024-06-01",
				EndDate:   "15-06-2024",
			},
			expectErr: true,
		},
		{
			name:      "неизвестный период",
			req:       models.DummyDeltaRequest{Period: "year"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParsePeriod(tt.req)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, spec.Kind)
		})
	}
}

func TestService_Compute(t *testing.T) {
	repo := new(MockRepository)
	registered := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)

	account := &models.Account{UID: "uid-1", Username: "ash", CreatedAt: registered}
	snapshots := []models.StatSnapshot{
		{
			UserUID:   "uid-1",
			EntryDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			TotalXP:   1000,
		},
		{
			UserUID:   "uid-1",
			EntryDate: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC),
			TotalXP:   2000,
		},
	}

	repo.On("GetAccountByUsername", mock.Anything, "ash").Return(account, nil)
	repo.On("ListSnapshots", mock.Anything, "uid-1").Return(snapshots, nil)

	service := New(repo, stats.NewEngine(0), newNoopLogger())
	delta, err := service.Compute(context.Background(), "ash", models.DummyDeltaRequest{
		Period:    "range",
		StartDate: "01-06-2024",
		EndDate:   "11-06-2024",
	}, now)

	assert.NoError(t, err)
	assert.Equal(t, int64(1000), delta.TotalXP)
	assert.Equal(t, 10, delta.DayCount)
	assert.Equal(t, int64(100), delta.XPPerDay)
	repo.AssertExpectations(t)
}

func TestService_Compute_InsufficientData(t *testing.T) {
	repo := new(MockRepository)
	account := &models.Account{UID: "uid-1", Username: "ash", CreatedAt: time.Now().UTC()}

	repo.On("GetAccountByUsername", mock.Anything, "ash").Return(account, nil)
	repo.On("ListSnapshots", mock.Anything, "uid-1").Return([]models.StatSnapshot{}, nil)

	service := New(repo, stats.NewEngine(0), newNoopLogger())
	_, err := service.Compute(context.Background(), "ash", models.DummyDeltaRequest{
		Period:    "range",
		StartDate: "01-06-2024",
		EndDate:   "11-06-2024",
	}, time.Now().UTC())

	assert.ErrorIs(t, err, stats.ErrInsufficientData)
}
