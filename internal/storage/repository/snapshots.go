package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

const snapshotColumns = `id, user_uid, entry_date, created_at, total_xp, pokemon_caught,
			      distance_walked, pokestops_visited, unique_pokedex_entries,
			      trainer_level, screenshot_key, verification_status, reject_reason`

func scanSnapshot(rows *sql.Rows, s *models.StatSnapshot) error {
	return rows.Scan(&s.ID, &s.UserUID, &s.EntryDate, &s.CreatedAt, &s.TotalXP,
		&s.PokemonCaught, &s.DistanceWalked, &s.PokestopsVisited,
		&s.UniquePokedexEntries, &s.TrainerLevel, &s.ScreenshotKey,
		&s.VerificationStatus, &s.RejectReason)
}

// CreateSnapshot вставляет новый снапшот и возвращает его ID.
func (s *Storage) CreateSnapshot(ctx context.Context, snap models.StatSnapshot) (int, error) {
	const op = "storage.CreateSnapshot"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO stat_snapshots (user_uid, entry_date, created_at, total_xp,
			      pokemon_caught, distance_walked, pokestops_visited,
			      unique_pokedex_entries, trainer_level, screenshot_key,
			      verification_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		snap.UserUID, snap.EntryDate, snap.CreatedAt, snap.TotalXP,
		snap.PokemonCaught, snap.DistanceWalked, snap.PokestopsVisited,
		snap.UniquePokedexEntries, snap.TrainerLevel, snap.ScreenshotKey,
		snap.VerificationStatus).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSnapshots возвращает историю снапшотов аккаунта без отклонённых
// записей, отсортированную по возрастанию (entry_date, created_at) —
// это входной контракт движка дельт.
func (s *Storage) ListSnapshots(ctx context.Context, userUID string) ([]models.StatSnapshot, error) {
	const op = "storage.ListSnapshots"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + snapshotColumns + `
			  FROM stat_snapshots
			  WHERE user_uid = $1 AND verification_status <> 'rejected'
			  ORDER BY entry_date, created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.StatSnapshot
	for rows.Next() {
		var item models.StatSnapshot
		if err := scanSnapshot(rows, &item); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListSnapshotsSince возвращает снапшоты всех аккаунтов, попадающие в
// период либо в буферное окно перед ним, в порядке движка дельт.
func (s *Storage) ListSnapshotsSince(ctx context.Context, entrySince time.Time, createdSince time.Time) ([]models.StatSnapshot, error) {
	const op = "storage.ListSnapshotsSince"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + snapshotColumns + `
			  FROM stat_snapshots
			  WHERE verification_status <> 'rejected'
			    AND (entry_date >= $1 OR created_at >= $2)
			  ORDER BY user_uid, entry_date, created_at`
	rows, err := s.DB.QueryContext(ctx, query, entrySince, createdSince)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.StatSnapshot
	for rows.Next() {
		var item models.StatSnapshot
		if err := scanSnapshot(rows, &item); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// LatestSnapshot возвращает последний снапшот аккаунта или nil,
// если записей ещё нет.
func (s *Storage) LatestSnapshot(ctx context.Context, userUID string) (*models.StatSnapshot, error) {
	const op = "storage.LatestSnapshot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + snapshotColumns + `
			  FROM stat_snapshots
			  WHERE user_uid = $1 AND verification_status <> 'rejected'
			  ORDER BY entry_date DESC, created_at DESC
			  LIMIT 1`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, nil
	}
	var item models.StatSnapshot
	if err := scanSnapshot(rows, &item); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}

// CountSnapshotsForDate подсчитывает записи аккаунта за календарную дату,
// используется для суточного лимита загрузок.
func (s *Storage) CountSnapshotsForDate(ctx context.Context, userUID string, entryDate time.Time) (int, error) {
	const op = "storage.CountSnapshotsForDate"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM stat_snapshots
			  WHERE user_uid = $1 AND entry_date = $2 AND verification_status <> 'rejected'`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userUID, entryDate).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// RemoveSnapshot удаляет снапшот аккаунта и возвращает количество
// удалённых строк.
func (s *Storage) RemoveSnapshot(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveSnapshot"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM stat_snapshots WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// TrimScreenshots очищает ссылки на скриншоты-подтверждения, оставляя
// только keep самых свежих на аккаунт. Сами снапшоты не удаляются.
func (s *Storage) TrimScreenshots(ctx context.Context, userUID string, keep int) error {
	const op = "storage.TrimScreenshots"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE stat_snapshots
			  SET screenshot_key = ''
			  WHERE user_uid = $1
			    AND screenshot_key <> ''
			    AND id NOT IN (
			        SELECT id FROM stat_snapshots
			        WHERE user_uid = $1 AND screenshot_key <> ''
			        ORDER BY created_at DESC
			        LIMIT $2
			    )`
	_, err := s.DB.ExecContext(ctx, query, userUID, keep)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPendingVerification возвращает очередь снапшотов, ожидающих
// модерации, с пагинацией.
func (s *Storage) ListPendingVerification(ctx context.Context, limit, offset int) ([]models.StatSnapshot, error) {
	const op = "storage.ListPendingVerification"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + snapshotColumns + `
			  FROM stat_snapshots
			  WHERE verification_status = 'pending'
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.StatSnapshot
	for rows.Next() {
		var item models.StatSnapshot
		if err := scanSnapshot(rows, &item); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SetVerificationStatus выставляет статус модерации снапшота и
// возвращает количество изменённых строк.
func (s *Storage) SetVerificationStatus(ctx context.Context, id int, status, reason string) (int, error) {
	const op = "storage.SetVerificationStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE stat_snapshots
			  SET verification_status = $1, reject_reason = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, status, reason, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
