// Package snapshot содержит бизнес-логику загрузки снапшотов игровой
// статистики: суточный лимит, проверку неубывания счётчиков и
// подрезание старых скриншотов-подтверждений.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// ErrUploadLimit возвращается при превышении суточного лимита загрузок.
var ErrUploadLimit = errors.New("daily upload limit reached")

// ErrNotMonotonic возвращается, когда счётчик нового снапшота меньше
// значения в последней записи аккаунта.
var ErrNotMonotonic = errors.New("counters must not decrease between snapshots")

// Repository описывает работу со снапшотами в хранилище.
type Repository interface {
	CreateSnapshot(ctx context.Context, snap models.StatSnapshot) (int, error)
	ListSnapshots(ctx context.Context, userUID string) ([]models.StatSnapshot, error)
	LatestSnapshot(ctx context.Context, userUID string) (*models.StatSnapshot, error)
	CountSnapshotsForDate(ctx context.Context, userUID string, entryDate time.Time) (int, error)
	RemoveSnapshot(ctx context.Context, id int, userUID string) (int, error)
	TrimScreenshots(ctx context.Context, userUID string, keep int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику снапшотов.
type Service struct {
	repo       Repository
	cache      Cache
	log        *slog.Logger
	dailyLimit int
	retainKeep int
}

// New создает новый экземпляр Service. dailyLimit — максимум загрузок
// на календарную дату, retainKeep — сколько свежих скриншотов хранить.
func New(repo Repository, cache Cache, log *slog.Logger, dailyLimit, retainKeep int) *Service {
	if dailyLimit < 1 {
		dailyLimit = 1
	}
	if retainKeep < 1 {
		retainKeep = 7
	}
	return &Service{
		repo:       repo,
		cache:      cache,
		log:        log,
		dailyLimit: dailyLimit,
		retainKeep: retainKeep,
	}
}

func historyKey(userUID string) string {
	return fmt.Sprintf("snapshots:%s", userUID)
}

// Create добавляет новый снапшот после проверки лимита и неубывания
// счётчиков, затем подрезает старые скриншоты.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummySnapshot) (int, error) {
	entryDate, err := time.Parse("02-01-2006", req.EntryDate)
	if err != nil {
		return 0, fmt.Errorf("invalid entry date: %w", err)
	}

	count, err := s.repo.CountSnapshotsForDate(ctx, userUID, entryDate)
	if err != nil {
		return 0, err
	}
	if count >= s.dailyLimit {
		return 0, ErrUploadLimit
	}

	latest, err := s.repo.LatestSnapshot(ctx, userUID)
	if err != nil {
		return 0, err
	}
	if latest != nil {
		if req.TotalXP < latest.TotalXP ||
			req.PokemonCaught < latest.PokemonCaught ||
			req.DistanceWalked < latest.DistanceWalked ||
			req.PokestopsVisited < latest.PokestopsVisited ||
			req.UniquePokedexEntries < latest.UniquePokedexEntries {
			return 0, ErrNotMonotonic
		}
	}

	snap := models.StatSnapshot{
		UserUID:              userUID,
		EntryDate:            entryDate,
		CreatedAt:            time.Now().UTC(),
		TotalXP:              req.TotalXP,
		PokemonCaught:        req.PokemonCaught,
		DistanceWalked:       req.DistanceWalked,
		PokestopsVisited:     req.PokestopsVisited,
		UniquePokedexEntries: req.UniquePokedexEntries,
		TrainerLevel:         req.TrainerLevel,
		ScreenshotKey:        req.ScreenshotKey,
		VerificationStatus:   models.VerificationPending,
	}

	id, err := s.repo.CreateSnapshot(ctx, snap)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new snapshot", slog.Int("id", id), slog.String("user_uid", userUID))

	if err := s.repo.TrimScreenshots(ctx, userUID, s.retainKeep); err != nil {
		s.log.Warn("failed to trim screenshots", slog.String("user_uid", userUID), slog.Any("err", err))
	}

	if err := s.cache.Invalidate(historyKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate snapshot cache", slog.Any("err", err))
	}
	return id, nil
}

// List возвращает историю снапшотов аккаунта, используя кеш или хранилище.
func (s *Service) List(ctx context.Context, userUID string) ([]models.StatSnapshot, error) {
	var result []models.StatSnapshot
	found, err := s.cache.Get(historyKey(userUID), &result)
	if err != nil {
		s.log.Warn("snapshot cache read failed", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListSnapshots(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(historyKey(userUID), result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache snapshots", slog.Any("err", err))
	}
	return result, nil
}

// Remove удаляет снапшот аккаунта и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, id int, userUID string) (int, error) {
	if err := s.cache.Invalidate(historyKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate snapshot cache", slog.Any("err", err))
	}
	return s.repo.RemoveSnapshot(ctx, id, userUID)
}
