package models

import "time"

// Статусы верификации снапшота.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// StatSnapshot представляет одну запись игровых счётчиков тренера.
// EntryDate — календарная дата, к которой логически относится запись,
// CreatedAt — фактическое время загрузки (может отличаться на часы).
// Пять счётчиков неубывающие между записями одного аккаунта — это
// проверяется при записи, движок дельт дополнительно страхуется
// обрезанием отрицательных разниц.
type StatSnapshot struct {
	ID                   int       // Идентификатор записи
	UserUID              string    // Аккаунт-владелец
	EntryDate            time.Time // Календарная дата записи
	CreatedAt            time.Time // Фактическое время загрузки
	TotalXP              int64     // Суммарный опыт
	PokemonCaught        int64     // Поймано покемонов
	DistanceWalked       float64   // Пройдено километров
	PokestopsVisited     int64     // Посещено покестопов
	UniquePokedexEntries int64     // Уникальных записей в покедексе
	TrainerLevel         int       // Уровень тренера на момент записи
	ScreenshotKey        string    // Ключ скриншота-подтверждения в объектном хранилище
	VerificationStatus   string    // pending, approved или rejected
	RejectReason         string    // Причина отклонения, пустая если не отклонён
}

// DummySnapshot используется для приёма снапшота из JSON-запроса.
// Счётчики могут быть нулевыми: у нового тренера нуль — легальное
// состояние, поэтому required на числовых полях не используется.
type DummySnapshot struct {
	EntryDate            string  `json:"entry_date" validate:"required"` // Формат 02-01-2006
	TotalXP              int64   `json:"total_xp" validate:"gte=0"`
	PokemonCaught        int64   `json:"pokemon_caught" validate:"gte=0"`
	DistanceWalked       float64 `json:"distance_walked" validate:"gte=0"`
	PokestopsVisited     int64   `json:"pokestops_visited" validate:"gte=0"`
	UniquePokedexEntries int64   `json:"unique_pokedex_entries" validate:"gte=0,lte=1200"`
	TrainerLevel         int     `json:"trainer_level" validate:"gt=0,lte=50"`
	ScreenshotKey        string  `json:"screenshot_key" validate:"omitempty"`
}
