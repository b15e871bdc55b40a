package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// RegisterAccount сохраняет новый аккаунт и возвращает его UID.
func (s *Storage) RegisterAccount(ctx context.Context, account models.Account) (string, error) {
	const op = "storage.RegisterAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO accounts (email, username, password_hash, role, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		account.Email, account.Username, account.PasswordHash, account.Role,
		account.CreatedAt).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var expireAt sql.NullTime
	if err := row.Scan(&a.UID, &a.Email, &a.Username, &a.PasswordHash,
		&a.Role, &a.CreatedAt, &a.IsPaidSubscriber, &expireAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if expireAt.Valid {
		a.SubscriptionExpireAt = &expireAt.Time
	}
	return a, nil
}

// GetAccountByUsername возвращает аккаунт по username.
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	const op = "storage.GetAccountByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, created_at,
			      is_paid_subscriber, subscription_expire_at
			  FROM accounts
			  WHERE username = $1`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetAccount возвращает аккаунт по его UID.
func (s *Storage) GetAccount(ctx context.Context, userUID string) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, created_at,
			      is_paid_subscriber, subscription_expire_at
			  FROM accounts
			  WHERE uid = $1`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// MarkPaid включает оплаченную подписку аккаунта до указанной даты.
func (s *Storage) MarkPaid(ctx context.Context, userUID string, expireAt time.Time) error {
	const op = "storage.MarkPaid"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET is_paid_subscriber = TRUE, subscription_expire_at = $1
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, expireAt, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkUnpaid гасит оплаченную подписку аккаунта.
func (s *Storage) MarkUnpaid(ctx context.Context, userUID string) error {
	const op = "storage.MarkUnpaid"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET is_paid_subscriber = FALSE
			  WHERE uid = $1`
	_, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindTrialsEndingToday находит неоплаченные аккаунты, чей пробный период
// заканчивается сегодня.
func (s *Storage) FindTrialsEndingToday(ctx context.Context, trialDays int) ([]*models.Account, error) {
	const op = "storage.FindTrialsEndingToday"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, created_at,
			      is_paid_subscriber, subscription_expire_at
			  FROM accounts
			  WHERE is_paid_subscriber = FALSE
			    AND (created_at + make_interval(days => $1))::DATE = CURRENT_DATE`
	rows, err := s.DB.QueryContext(ctx, query, trialDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		var a models.Account
		var expireAt sql.NullTime
		if err = rows.Scan(&a.UID, &a.Email, &a.Username, &a.PasswordHash,
			&a.Role, &a.CreatedAt, &a.IsPaidSubscriber, &expireAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if expireAt.Valid {
			a.SubscriptionExpireAt = &expireAt.Time
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
