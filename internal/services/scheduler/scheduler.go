// Package scheduler находит аккаунты, у которых сегодня истекает пробный
// период, и публикует напоминания в очередь уведомлений.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/lib/rabbitmq"
	"github.com/Unlucky13unny/playerzero/internal/metrics"
	"github.com/Unlucky13unny/playerzero/internal/models"
)

// Repository описывает поиск аккаунтов с истекающим пробным периодом.
type Repository interface {
	FindTrialsEndingToday(ctx context.Context, trialDays int) ([]*models.Account, error)
}

// TrialExpiringMessage — сообщение напоминания, публикуемое в брокер.
type TrialExpiringMessage struct {
	UserUID  string    `json:"user_uid"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	TrialEnd time.Time `json:"trial_end"`
}

// Service публикует напоминания об истечении пробного периода.
type Service struct {
	repo        Repository
	channel     rabbitmq.Publisher
	log         *slog.Logger
	trialLength time.Duration
}

// New создает новый экземпляр Service.
func New(repo Repository, channel rabbitmq.Publisher, log *slog.Logger, trialLength time.Duration) *Service {
	return &Service{
		repo:        repo,
		channel:     channel,
		log:         log,
		trialLength: trialLength,
	}
}

// PublishExpiringTrials находит аккаунты, чей пробный период заканчивается
// сегодня, и публикует по одному напоминанию на аккаунт. Возвращает
// количество опубликованных сообщений.
func (s *Service) PublishExpiringTrials(ctx context.Context) (int, error) {
	const op = "services.scheduler.PublishExpiringTrials"

	trialDays := int(s.trialLength.Hours() / 24)
	accounts, err := s.repo.FindTrialsEndingToday(ctx, trialDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	published := 0
	for _, account := range accounts {
		msg := TrialExpiringMessage{
			UserUID:  account.UID,
			Username: account.Username,
			Email:    account.Email,
			TrialEnd: account.CreatedAt.Add(s.trialLength),
		}
		if err := rabbitmq.PublishMessage(s.channel, rabbitmq.NotificationsExchange, "trial-expiring", msg); err != nil {
			return published, fmt.Errorf("%s: %w", op, err)
		}
		published++
		metrics.TrialReminders.Inc()
		s.log.Info("published trial reminder", slog.String("username", account.Username))
	}
	return published, nil
}

// Run публикует напоминания раз в interval до отмены контекста.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		count, err := s.PublishExpiringTrials(ctx)
		if err != nil {
			s.log.Error("failed to publish trial reminders", slog.Any("err", err))
		} else {
			s.log.Info("trial reminder pass complete", slog.Int("published", count))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
