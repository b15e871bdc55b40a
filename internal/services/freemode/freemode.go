// Package freemode управляет глобальным флагом free mode: значение
// хранится в базе, сервис держит кешированную копию с отметкой времени
// и обновляет её фоновой задачей, публикуя изменения в канал.
package freemode

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/storage/repository"
)

// FlagRepository описывает методы работы с глобальными флагами в хранилище.
type FlagRepository interface {
	GetFlag(ctx context.Context, name string) (*models.FreeModeFlag, error)
	SetFlag(ctx context.Context, name string, enabled bool, updatedBy string) error
}

// Service кеширует флаг free mode и обновляет его по расписанию.
type Service struct {
	repo        FlagRepository
	log         *slog.Logger
	refreshRate time.Duration

	mu      sync.RWMutex
	current models.FreeModeFlag

	updates chan models.FreeModeFlag
}

// New создает Service. refreshRate — период фонового обновления,
// по умолчанию пять минут.
func New(repo FlagRepository, log *slog.Logger, refreshRate time.Duration) *Service {
	if refreshRate <= 0 {
		refreshRate = 5 * time.Minute
	}
	return &Service{
		repo:        repo,
		log:         log,
		refreshRate: refreshRate,
		updates:     make(chan models.FreeModeFlag, 1),
	}
}

// Run запускает фоновое обновление флага до отмены контекста.
// Первое чтение выполняется сразу.
func (s *Service) Run(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Error("failed to load free mode flag", sl.Err(err))
	}

	ticker := time.NewTicker(s.refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Error("failed to refresh free mode flag", sl.Err(err))
			}
		}
	}
}

// Refresh принудительно перечитывает флаг из хранилища — вызывается
// фоновым тикером и при возврате приложения на передний план.
func (s *Service) Refresh(ctx context.Context) error {
	flag, err := s.repo.GetFlag(ctx, repository.FreeModeFlagName)
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.current.Enabled != flag.Enabled
	s.current = *flag
	s.mu.Unlock()

	if changed {
		s.log.Info("free mode flag changed", slog.Bool("enabled", flag.Enabled))
		select {
		case s.updates <- *flag:
		default:
		}
	}
	return nil
}

// Enabled возвращает кешированное значение флага.
func (s *Service) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Enabled
}

// Current возвращает кешированный флаг вместе с отметкой времени.
func (s *Service) Current() models.FreeModeFlag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Updates возвращает канал с изменениями флага.
func (s *Service) Updates() <-chan models.FreeModeFlag {
	return s.updates
}

// SetEnabled записывает новое значение флага и сразу обновляет кеш.
func (s *Service) SetEnabled(ctx context.Context, enabled bool, updatedBy string) error {
	if err := s.repo.SetFlag(ctx, repository.FreeModeFlagName, enabled, updatedBy); err != nil {
		return err
	}
	return s.Refresh(ctx)
}
