package models

import "time"

// LeaderboardEntry представляет одну строку таблицы лидеров за период.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	Username     string  `json:"username"`
	TrainerName  string  `json:"trainer_name"`
	Team         string  `json:"team"`
	Country      string  `json:"country"`
	TrainerLevel int     `json:"trainer_level"`
	Value        float64 `json:"value"` // Значение выбранной метрики за период
}

// LeaderboardCandidate представляет аккаунт с профилем — кандидата в
// таблицу лидеров до применения проверки доступа и подсчёта дельты.
type LeaderboardCandidate struct {
	UserUID              string
	Username             string
	CreatedAt            time.Time
	IsPaidSubscriber     bool
	SubscriptionExpireAt *time.Time
	TrainerName          string
	TrainerLevel         int
	Team                 string
	Country              string
}
