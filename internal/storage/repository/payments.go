package repository

import (
	"context"
	"fmt"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// RecordPaymentEvent сохраняет событие платёжного провайдера. Возвращает
// false, если событие с таким provider_id уже обрабатывалось — вебхуки
// приходят повторно и обязаны быть идемпотентными.
func (s *Storage) RecordPaymentEvent(ctx context.Context, event models.PaymentEvent) (bool, error) {
	const op = "storage.RecordPaymentEvent"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_events (provider_id, user_uid, event_type)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (provider_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, event.ProviderID, event.UserUID, event.EventType)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
