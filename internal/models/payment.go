package models

import "time"

// PaymentEvent представляет обработанное событие платёжного провайдера,
// сохраняется для идемпотентности вебхука.
type PaymentEvent struct {
	ID         int       `json:"id"`
	ProviderID string    `json:"provider_id"` // Идентификатор события у провайдера
	UserUID    string    `json:"user_uid"`
	EventType  string    `json:"event_type"`
	CreatedAt  time.Time `json:"created_at"`
}
