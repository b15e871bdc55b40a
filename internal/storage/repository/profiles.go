package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// UpsertProfile создаёт либо обновляет карточку тренера.
func (s *Storage) UpsertProfile(ctx context.Context, profile models.Profile) error {
	const op = "storage.UpsertProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO profiles (user_uid, trainer_name, trainer_level, team, country,
			      trainer_code, start_date, instagram, tiktok, youtube)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET trainer_name = EXCLUDED.trainer_name,
			      trainer_level = EXCLUDED.trainer_level,
			      team = EXCLUDED.team,
			      country = EXCLUDED.country,
			      trainer_code = EXCLUDED.trainer_code,
			      start_date = EXCLUDED.start_date,
			      instagram = EXCLUDED.instagram,
			      tiktok = EXCLUDED.tiktok,
			      youtube = EXCLUDED.youtube`
	_, err := s.DB.ExecContext(ctx, query,
		profile.UserUID, profile.TrainerName, profile.TrainerLevel, profile.Team,
		profile.Country, profile.TrainerCode, profile.StartDate,
		profile.Instagram, profile.TikTok, profile.YouTube)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetProfile возвращает карточку тренера по UID аккаунта.
func (s *Storage) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, trainer_name, trainer_level, team, country,
			      trainer_code, start_date, instagram, tiktok, youtube
			  FROM profiles
			  WHERE user_uid = $1`
	p := &models.Profile{}
	var startDate sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&p.UserUID, &p.TrainerName,
		&p.TrainerLevel, &p.Team, &p.Country, &p.TrainerCode, &startDate,
		&p.Instagram, &p.TikTok, &p.YouTube)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if startDate.Valid {
		p.StartDate = &startDate.Time
	}
	return p, nil
}

// ListLeaderboardCandidates возвращает все аккаунты с заполненными
// профилями для построения таблицы лидеров.
func (s *Storage) ListLeaderboardCandidates(ctx context.Context) ([]models.LeaderboardCandidate, error) {
	const op = "storage.ListLeaderboardCandidates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.uid, a.username, a.created_at, a.is_paid_subscriber,
			      a.subscription_expire_at,
			      p.trainer_name, p.trainer_level, p.team, p.country
			  FROM accounts a
			  JOIN profiles p ON p.user_uid = a.uid
			  ORDER BY a.username`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.LeaderboardCandidate
	for rows.Next() {
		var c models.LeaderboardCandidate
		var expireAt sql.NullTime
		if err = rows.Scan(&c.UserUID, &c.Username, &c.CreatedAt, &c.IsPaidSubscriber,
			&expireAt, &c.TrainerName, &c.TrainerLevel, &c.Team, &c.Country); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if expireAt.Valid {
			c.SubscriptionExpireAt = &expireAt.Time
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
