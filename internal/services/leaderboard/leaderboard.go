// Package leaderboard строит таблицу лидеров за период: собирает
// кандидатов, отсекает аккаунты без права показа и считает дельты
// выбранной метрики. Готовые таблицы кэшируются.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/access"
	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/stats"
)

// ErrUnknownMetric возвращается для неизвестной метрики ранжирования.
var ErrUnknownMetric = errors.New("unknown leaderboard metric")

// Метрики ранжирования таблицы лидеров.
const (
	MetricXP       = "xp"
	MetricCatches  = "catches"
	MetricDistance = "distance"
	MetricStops    = "stops"
)

// Repository описывает чтение кандидатов и истории снапшотов.
type Repository interface {
	ListLeaderboardCandidates(ctx context.Context) ([]models.LeaderboardCandidate, error)
	ListSnapshotsSince(ctx context.Context, entrySince time.Time, createdSince time.Time) ([]models.StatSnapshot, error)
}

// FreeMode сообщает текущее состояние бесплатного режима.
type FreeMode interface {
	Enabled() bool
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует построение таблицы лидеров.
type Service struct {
	repo     Repository
	freeMode FreeMode
	resolver *access.Resolver
	engine   *stats.Engine
	cache    Cache
	log      *slog.Logger
	cacheTTL time.Duration
}

// New создает новый экземпляр Service.
func New(repo Repository, freeMode FreeMode, resolver *access.Resolver, engine *stats.Engine, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		freeMode: freeMode,
		resolver: resolver,
		engine:   engine,
		cache:    cache,
		log:      log,
		cacheTTL: 5 * time.Minute,
	}
}

func cacheKey(period stats.PeriodKind, metric string) string {
	return fmt.Sprintf("leaderboard:%s:%s", period, metric)
}

func metricValue(delta *models.StatDelta, metric string) (float64, error) {
	switch metric {
	case MetricXP:
		return float64(delta.TotalXP), nil
	case MetricCatches:
		return float64(delta.PokemonCaught), nil
	case MetricDistance:
		return delta.DistanceWalked, nil
	case MetricStops:
		return float64(delta.PokestopsVisited), nil
	default:
		return 0, ErrUnknownMetric
	}
}

// Build возвращает таблицу лидеров за календарный период по метрике.
// Допустимые периоды — week, month и all.
func (s *Service) Build(ctx context.Context, period stats.PeriodKind, metric string, now time.Time) ([]models.LeaderboardEntry, error) {
	const op = "services.leaderboard.Build"

	if _, err := metricValue(&models.StatDelta{}, metric); err != nil {
		return nil, err
	}

	var spec stats.PeriodSpec
	switch period {
	case stats.PeriodWeek:
		spec = stats.CurrentWeek()
	case stats.PeriodMonth:
		spec = stats.CurrentMonth()
	case stats.PeriodAllTime:
		spec = stats.AllTime()
	default:
		return nil, fmt.Errorf("%s: unsupported period: %s", op, period)
	}

	key := cacheKey(period, metric)
	var cached []models.LeaderboardEntry
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("leaderboard cache read failed", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	candidates, err := s.repo.ListLeaderboardCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snapshots, err := s.loadSnapshots(ctx, spec, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byUser := make(map[string][]models.StatSnapshot)
	for _, snap := range snapshots {
		byUser[snap.UserUID] = append(byUser[snap.UserUID], snap)
	}

	freeModeEnabled := s.freeMode.Enabled()
	entries := make([]models.LeaderboardEntry, 0, len(candidates))
	for _, cand := range candidates {
		account := &models.Account{
			UID:                  cand.UserUID,
			Username:             cand.Username,
			CreatedAt:            cand.CreatedAt,
			IsPaidSubscriber:     cand.IsPaidSubscriber,
			SubscriptionExpireAt: cand.SubscriptionExpireAt,
		}
		decision := s.resolver.Resolve(account, freeModeEnabled, now)
		if !decision.CanAppearOnLeaderboard {
			continue
		}

		delta, err := s.engine.ComputeDelta(byUser[cand.UserUID], spec, cand.CreatedAt, now)
		if err != nil {
			if errors.Is(err, stats.ErrInsufficientData) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		value, err := metricValue(delta, metric)
		if err != nil {
			return nil, err
		}
		if value == 0 {
			continue
		}

		entries = append(entries, models.LeaderboardEntry{
			Username:     cand.Username,
			TrainerName:  cand.TrainerName,
			Team:         cand.Team,
			Country:      cand.Country,
			TrainerLevel: cand.TrainerLevel,
			Value:        value,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if err := s.cache.Set(key, entries, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache leaderboard", slog.String("key", key), slog.Any("err", err))
	}
	return entries, nil
}

// loadSnapshots читает из хранилища только снапшоты, достижимые движком
// для выбранного периода: попавшие в период либо в буферное окно.
func (s *Service) loadSnapshots(ctx context.Context, spec stats.PeriodSpec, now time.Time) ([]models.StatSnapshot, error) {
	if spec.Kind == stats.PeriodAllTime {
		return s.repo.ListSnapshotsSince(ctx, time.Time{}, time.Time{})
	}

	var periodStart time.Time
	if spec.Kind == stats.PeriodWeek {
		periodStart = stats.WeekStart(now)
	} else {
		periodStart = stats.MonthStart(now)
	}
	return s.repo.ListSnapshotsSince(ctx, periodStart, periodStart.Add(-s.engine.BufferWindow()))
}

// Invalidate сбрасывает кэшированные таблицы всех периодов метрики.
func (s *Service) Invalidate(metric string) {
	for _, period := range []stats.PeriodKind{stats.PeriodWeek, stats.PeriodMonth, stats.PeriodAllTime} {
		if err := s.cache.Invalidate(cacheKey(period, metric)); err != nil {
			s.log.Warn("failed to invalidate leaderboard cache", slog.Any("err", err))
		}
	}
}
