// Package payment содержит бизнес-логику оплаты подписки: создание
// checkout-сессии и идемпотентную обработку событий вебхука.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/metrics"
	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/paymentprovider"
)

// Repository описывает работу с аккаунтами и журналом платёжных событий.
type Repository interface {
	GetAccount(ctx context.Context, userUID string) (*models.Account, error)
	MarkPaid(ctx context.Context, userUID string, expireAt time.Time) error
	MarkUnpaid(ctx context.Context, userUID string) error
	RecordPaymentEvent(ctx context.Context, event models.PaymentEvent) (bool, error)
}

// Provider описывает клиент платёжного провайдера.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req paymentprovider.CheckoutSessionRequest) (*paymentprovider.CheckoutSession, error)
	VerifySignature(payload []byte, header string) (*paymentprovider.WebhookEvent, error)
}

// Config — параметры тарифа и redirect-адреса провайдера.
type Config struct {
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// Service реализует бизнес-логику оплаты.
type Service struct {
	repo     Repository
	provider Provider
	cfg      Config
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, provider Provider, cfg Config, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

// CreateCheckout создаёт для пользователя сессию оплаты подписки и
// возвращает URL для перехода на страницу провайдера.
func (s *Service) CreateCheckout(ctx context.Context, userUID string) (string, error) {
	const op = "services.payment.CreateCheckout"

	account, err := s.repo.GetAccount(ctx, userUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CheckoutSessionRequest{
		PriceID:           s.cfg.PriceID,
		Quantity:          1,
		Mode:              "subscription",
		SuccessURL:        s.cfg.SuccessURL,
		CancelURL:         s.cfg.CancelURL,
		ClientReferenceID: account.UID,
		CustomerEmail:     account.Email,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created checkout session",
		slog.String("user_uid", account.UID), slog.String("session_id", session.ID))
	return session.URL, nil
}

// ProcessWebhookEvent проверяет подпись, записывает событие в журнал и
// применяет его к аккаунту. Повторная доставка того же события
// провайдером игнорируется.
func (s *Service) ProcessWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	const op = "services.payment.ProcessWebhookEvent"

	event, err := s.provider.VerifySignature(payload, signature)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	userUID := event.Data.Object.ClientReferenceID
	inserted, err := s.repo.RecordPaymentEvent(ctx, models.PaymentEvent{
		ProviderID: event.ID,
		UserUID:    userUID,
		EventType:  event.Type,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !inserted {
		s.log.Info("skipping duplicate webhook event", slog.String("provider_id", event.ID))
		return nil
	}
	metrics.WebhookEvents.WithLabelValues(event.Type).Inc()

	switch event.Type {
	case paymentprovider.EventCheckoutCompleted:
		expireAt := time.Now().UTC().AddDate(0, 1, 0)
		if event.Data.Object.CurrentPeriodEnd > 0 {
			expireAt = time.Unix(event.Data.Object.CurrentPeriodEnd, 0).UTC()
		}
		if err := s.repo.MarkPaid(ctx, userUID, expireAt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("activated paid subscription",
			slog.String("user_uid", userUID), slog.Time("expire_at", expireAt))
	case paymentprovider.EventSubscriptionUpdated:
		if event.Data.Object.CurrentPeriodEnd > 0 {
			expireAt := time.Unix(event.Data.Object.CurrentPeriodEnd, 0).UTC()
			if err := s.repo.MarkPaid(ctx, userUID, expireAt); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			s.log.Info("extended paid subscription",
				slog.String("user_uid", userUID), slog.Time("expire_at", expireAt))
		}
	case paymentprovider.EventSubscriptionDeleted:
		if err := s.repo.MarkUnpaid(ctx, userUID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("deactivated paid subscription", slog.String("user_uid", userUID))
	default:
		s.log.Info("ignoring webhook event", slog.String("type", event.Type))
	}
	return nil
}
