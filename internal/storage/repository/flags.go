package repository

import (
	"context"
	"fmt"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// FreeModeFlagName имя глобального флага free mode в таблице app_flags.
const FreeModeFlagName = "free_mode"

// GetFlag возвращает глобальный флаг по имени. Отсутствующий флаг
// трактуется как выключенный.
func (s *Storage) GetFlag(ctx context.Context, name string) (*models.FreeModeFlag, error) {
	const op = "storage.GetFlag"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT enabled, updated_at, updated_by FROM app_flags WHERE name = $1`
	flag := &models.FreeModeFlag{}
	err := s.DB.QueryRowContext(ctx, query, name).Scan(&flag.Enabled, &flag.UpdatedAt, &flag.UpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return flag, nil
}

// SetFlag выставляет значение глобального флага.
func (s *Storage) SetFlag(ctx context.Context, name string, enabled bool, updatedBy string) error {
	const op = "storage.SetFlag"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO app_flags (name, enabled, updated_at, updated_by)
			  VALUES ($1, $2, now(), $3)
			  ON CONFLICT (name) DO UPDATE
			  SET enabled = EXCLUDED.enabled,
			      updated_at = now(),
			      updated_by = EXCLUDED.updated_by`
	_, err := s.DB.ExecContext(ctx, query, name, enabled, updatedBy)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
