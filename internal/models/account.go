// Package models содержит доменные структуры PlayerZERO: аккаунты тренеров,
// снапшоты игровой статистики, решения о доступе и производные дельты,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Account представляет зарегистрированного тренера.
type Account struct {
	UID                  string     // Уникальный идентификатор аккаунта
	Email                string     // Электронная почта
	Username             string     // Имя пользователя (уникальное)
	PasswordHash         string     // Хэш пароля
	Role                 string     // Роль, admin или user
	CreatedAt            time.Time  // Дата регистрации, фиксируется один раз
	IsPaidSubscriber     bool       // Признак оплаченной подписки, меняется вебхуком
	SubscriptionExpireAt *time.Time // Дата истечения оплаченной подписки, nil — бессрочно
}

// Profile представляет публичную карточку тренера.
type Profile struct {
	UserUID      string     // Идентификатор аккаунта-владельца
	TrainerName  string     // Игровое имя тренера
	TrainerLevel int        // Текущий уровень тренера
	Team         string     // Команда: valor, mystic или instinct
	Country      string     // Страна тренера
	TrainerCode  string     // Код тренера, показывается только при полном доступе
	StartDate    *time.Time // Дата начала игры
	Instagram    string     // Ссылки на соцсети, показываются только при полном доступе
	TikTok       string
	YouTube      string
}

// DummyProfile используется для приёма данных профиля из JSON-запроса.
type DummyProfile struct {
	TrainerName  string `json:"trainer_name" validate:"required"`
	TrainerLevel int    `json:"trainer_level" validate:"required,gt=0"`
	Team         string `json:"team" validate:"required,oneof=valor mystic instinct"`
	Country      string `json:"country" validate:"required"`
	TrainerCode  string `json:"trainer_code" validate:"omitempty,numeric"`
	StartDate    string `json:"start_date" validate:"omitempty"` // Формат 02-01-2006
	Instagram    string `json:"instagram,omitempty" validate:"omitempty"`
	TikTok       string `json:"tiktok,omitempty" validate:"omitempty"`
	YouTube      string `json:"youtube,omitempty" validate:"omitempty"`
}
