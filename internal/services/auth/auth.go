// Package auth содержит бизнес-логику регистрации, входа и валидации JWT.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/lib/jwt"
	"github.com/Unlucky13unny/playerzero/internal/lib/password"
	"github.com/Unlucky13unny/playerzero/internal/models"
)

// AccountRepository описывает контракт для работы с аккаунтами.
type AccountRepository interface {
	// RegisterAccount сохраняет новый аккаунт и возвращает его UID.
	RegisterAccount(ctx context.Context, account models.Account) (string, error)
	// GetAccountByUsername возвращает аккаунт по имени или ошибку, если не найден.
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	accounts AccountRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(accounts AccountRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		accounts: accounts,
		jwtMaker: jwtMaker,
	}
}

// Register создает новый аккаунт с хэшированием пароля и ролью user.
// Дата регистрации фиксируется здесь и больше не пересчитывается:
// от неё отсчитывается семидневный пробный период.
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	account := models.Account{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         "user",
		CreatedAt:    time.Now().UTC(),
	}
	return s.accounts.RegisterAccount(ctx, account)
}

// Login проверяет пароль и генерирует JWT.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(account.Username, account.Role, account.UID)
	if err != nil {
		return "", "", err
	}
	return token, account.Role, nil
}

// ValidateToken проверяет JWT и возвращает username, роль и UID аккаунта.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
