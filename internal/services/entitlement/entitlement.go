// Package entitlement собирает входы для вычисления решения о доступе:
// аккаунт из хранилища, кешированный флаг free mode и текущее время —
// и передаёт их чистому резолверу.
package entitlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/access"
	"github.com/Unlucky13unny/playerzero/internal/models"
)

// AccountRepository описывает чтение аккаунтов.
type AccountRepository interface {
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// FreeMode описывает источник кешированного флага free mode.
type FreeMode interface {
	Enabled() bool
}

// Service вычисляет AccessDecision для аккаунта.
type Service struct {
	accounts AccountRepository
	freemode FreeMode
	resolver *access.Resolver
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(accounts AccountRepository, freemode FreeMode, resolver *access.Resolver, log *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		freemode: freemode,
		resolver: resolver,
		log:      log,
	}
}

// ResolveForUsername возвращает решение о доступе для пользователя.
func (s *Service) ResolveForUsername(ctx context.Context, username string, now time.Time) (*models.AccessDecision, error) {
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	decision := s.resolver.Resolve(account, s.freemode.Enabled(), now)
	return &decision, nil
}

// ResolveForAccount возвращает решение о доступе для уже загруженного
// аккаунта; nil означает неавторизованного посетителя.
func (s *Service) ResolveForAccount(account *models.Account, now time.Time) models.AccessDecision {
	return s.resolver.Resolve(account, s.freemode.Enabled(), now)
}
