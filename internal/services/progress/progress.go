// Package progress отвечает за вычисление прогресса тренера: разбирает
// запрошенный период, достаёт историю снапшотов и запускает движок дельт.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/stats"
)

// Repository описывает чтение аккаунтов и истории снапшотов.
type Repository interface {
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	ListSnapshots(ctx context.Context, userUID string) ([]models.StatSnapshot, error)
}

// Service вычисляет дельты за период для одного аккаунта.
type Service struct {
	repo   Repository
	engine *stats.Engine
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, engine *stats.Engine, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		log:    log,
	}
}

// ParsePeriod превращает запрос в PeriodSpec движка.
func ParsePeriod(req models.DummyDeltaRequest) (stats.PeriodSpec, error) {
	switch stats.PeriodKind(req.Period) {
	case stats.PeriodWeek:
		return stats.CurrentWeek(), nil
	case stats.PeriodMonth:
		return stats.CurrentMonth(), nil
	case stats.PeriodAllTime:
		return stats.AllTime(), nil
	case stats.PeriodRange:
		start, err := time.Parse("02-01-2006", req.StartDate)
		if err != nil {
			return stats.PeriodSpec{}, fmt.Errorf("invalid start date: %w", err)
		}
		end, err := time.Parse("02-01-2006", req.EndDate)
		if err != nil {
			return stats.PeriodSpec{}, fmt.Errorf("invalid end date: %w", err)
		}
		if end.Before(start) {
			return stats.PeriodSpec{}, fmt.Errorf("end date must not precede start date")
		}
		return stats.ExplicitRange(start, end), nil
	default:
		return stats.PeriodSpec{}, fmt.Errorf("unsupported period: %s", req.Period)
	}
}

// Compute возвращает дельту счётчиков пользователя за период.
// Ошибка stats.ErrInsufficientData пробрасывается вызывающему.
func (s *Service) Compute(ctx context.Context, username string, req models.DummyDeltaRequest, now time.Time) (*models.StatDelta, error) {
	spec, err := ParsePeriod(req)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.repo.ListSnapshots(ctx, account.UID)
	if err != nil {
		return nil, err
	}

	return s.engine.ComputeDelta(snapshots, spec, account.CreatedAt, now)
}
