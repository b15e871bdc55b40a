package models

import "time"

// StatDelta представляет прирост пяти счётчиков за период плюс
// среднесуточные темпы и границы разрешённого периода.
// Производная структура, не хранится.
type StatDelta struct {
	TotalXP              int64   `json:"total_xp"`
	PokemonCaught        int64   `json:"pokemon_caught"`
	DistanceWalked       float64 `json:"distance_walked"`
	PokestopsVisited     int64   `json:"pokestops_visited"`
	UniquePokedexEntries int64   `json:"unique_pokedex_entries"`

	XPPerDay       int64   `json:"xp_per_day"`
	CatchesPerDay  int64   `json:"catches_per_day"`
	DistancePerDay float64 `json:"distance_per_day"`
	StopsPerDay    int64   `json:"stops_per_day"`

	DayCount    int       `json:"day_count"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// DummyDeltaRequest используется для приёма параметров запроса дельты
// из JSON-запроса. Даты обязательны только для режима range.
type DummyDeltaRequest struct {
	Period    string `json:"period" validate:"required,oneof=range week month all"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty"` // Формат 02-01-2006
	EndDate   string `json:"end_date,omitempty" validate:"omitempty"`   // Формат 02-01-2006
}
