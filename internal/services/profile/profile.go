// Package profile содержит бизнес-логику карточек тренеров, включая
// фильтрацию платных полей по решению о доступе зрителя.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// Repository описывает работу с профилями и аккаунтами в хранилище.
type Repository interface {
	UpsertProfile(ctx context.Context, profile models.Profile) error
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с профилями.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Update сохраняет карточку тренера текущего пользователя.
func (s *Service) Update(ctx context.Context, userUID string, req models.DummyProfile) error {
	p := models.Profile{
		UserUID:      userUID,
		TrainerName:  req.TrainerName,
		TrainerLevel: req.TrainerLevel,
		Team:         req.Team,
		Country:      req.Country,
		TrainerCode:  req.TrainerCode,
		Instagram:    req.Instagram,
		TikTok:       req.TikTok,
		YouTube:      req.YouTube,
	}
	if req.StartDate != "" {
		startDate, err := time.Parse("02-01-2006", req.StartDate)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		p.StartDate = &startDate
	}

	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("profile:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// Get возвращает карточку тренера по username владельца, отфильтрованную
// по решению о доступе зрителя: код тренера и соцсети видны только при
// полном доступе владельца карточки.
func (s *Service) Get(ctx context.Context, ownerUsername string, ownerDecision models.AccessDecision) (*models.Profile, error) {
	account, err := s.repo.GetAccountByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}

	var p *models.Profile
	cacheKey := fmt.Sprintf("profile:%s", account.UID)
	found, err := s.cache.Get(cacheKey, &p)
	if err != nil {
		s.log.Warn("profile cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if !found {
		p, err = s.repo.GetProfile(ctx, account.UID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, p, time.Hour); err != nil {
			s.log.Warn("failed to cache profile", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}

	filtered := *p
	if !ownerDecision.CanShowTrainerCode {
		filtered.TrainerCode = ""
	}
	if !ownerDecision.CanShowSocialLinks {
		filtered.Instagram = ""
		filtered.TikTok = ""
		filtered.YouTube = ""
	}
	return &filtered, nil
}
