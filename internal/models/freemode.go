package models

import "time"

// FreeModeFlag представляет глобальный флаг free mode с отметкой времени
// последнего обновления. Значение по умолчанию false, автоматического
// истечения нет.
type FreeModeFlag struct {
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"` // Username администратора
}
