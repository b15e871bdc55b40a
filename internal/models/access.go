package models

// AccessDecision описывает набор возможностей, вычисленный для одного
// аккаунта в один момент времени. Не хранится, пересчитывается при
// каждом обращении.
type AccessDecision struct {
	IsPaidSubscriber bool `json:"is_paid_subscriber"` // В free mode сообщается как true
	IsInTrial        bool `json:"is_in_trial"`

	CanViewLeaderboard      bool `json:"can_view_leaderboard"`
	CanAppearOnLeaderboard  bool `json:"can_appear_on_leaderboard"`
	CanGenerateCard         bool `json:"can_generate_card"`
	CanShareGrindCard       bool `json:"can_share_grind_card"`
	CanShareWeeklyCard      bool `json:"can_share_weekly_card"`
	CanShareMonthlyCard     bool `json:"can_share_monthly_card"`
	CanClickThroughProfiles bool `json:"can_click_through_profiles"`
	CanShowTrainerCode      bool `json:"can_show_trainer_code"`
	CanShowSocialLinks      bool `json:"can_show_social_links"`

	TrialCountdown TrialCountdown `json:"trial_countdown"`
}

// TrialCountdown раскладывает остаток пробного периода по единицам
// без двойного счёта, плюс суммарные значения в часах, минутах и секундах.
type TrialCountdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`

	TotalHours   int64 `json:"total_hours"`
	TotalMinutes int64 `json:"total_minutes"`
	TotalSeconds int64 `json:"total_seconds"`
}
