// Package moderation содержит бизнес-логику проверки скриншотов:
// очередь ожидающих снапшотов и вердикты администратора.
package moderation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// ErrUnknownVerdict возвращается для вердикта вне approved/rejected.
var ErrUnknownVerdict = errors.New("verdict must be approved or rejected")

// Repository описывает работу с очередью модерации в хранилище.
type Repository interface {
	ListPendingVerification(ctx context.Context, limit, offset int) ([]models.StatSnapshot, error)
	SetVerificationStatus(ctx context.Context, id int, status, reason string) (int, error)
}

// Service реализует бизнес-логику модерации.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Queue возвращает снапшоты, ожидающие проверки.
func (s *Service) Queue(ctx context.Context, limit int) ([]models.StatSnapshot, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.repo.ListPendingVerification(ctx, limit, 0)
}

// Review применяет вердикт администратора к снапшоту. Возвращает
// количество обновлённых строк: ноль означает, что снапшот не найден.
func (s *Service) Review(ctx context.Context, id int, verdict, reason string) (int, error) {
	if verdict != models.VerificationApproved && verdict != models.VerificationRejected {
		return 0, ErrUnknownVerdict
	}
	if verdict == models.VerificationApproved {
		reason = ""
	}

	updated, err := s.repo.SetVerificationStatus(ctx, id, verdict, reason)
	if err != nil {
		return 0, err
	}
	s.log.Info("reviewed snapshot",
		slog.Int("id", id), slog.String("verdict", verdict), slog.Int("updated", updated))
	return updated, nil
}
