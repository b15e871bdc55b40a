// Package access реализует вычисление решения о доступе для одного
// аккаунта в один момент времени. Resolver — чистая функция над
// переданными данными, не выполняет I/O и не хранит состояния между
// вызовами.
//
// Приоритет уровней строгий, первый подходящий выигрывает:
// неавторизован -> free mode -> оплачен и активен -> пробный период ->
// истёкший бесплатный уровень. Благодаря этому флаги возможностей
// не могут противоречить друг другу.
package access

import (
	"time"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// Resolver вычисляет AccessDecision. Длина пробного периода фиксируется
// при создании и отсчитывается от даты регистрации аккаунта.
type Resolver struct {
	trialLength time.Duration
}

// DefaultTrialLength пробный период по умолчанию: 7 дней с момента регистрации.
const DefaultTrialLength = 7 * 24 * time.Hour

// NewResolver создает Resolver с заданной длиной пробного периода.
// При нулевом или отрицательном значении используется DefaultTrialLength.
func NewResolver(trialLength time.Duration) *Resolver {
	if trialLength <= 0 {
		trialLength = DefaultTrialLength
	}
	return &Resolver{trialLength: trialLength}
}

// Resolve возвращает решение о доступе для аккаунта на момент now.
// account может быть nil — это неавторизованный посетитель.
// freeModeEnabled передаётся вызывающей стороной вместе с её политикой
// обновления, резолвер не читает флаг сам.
func (r *Resolver) Resolve(account *models.Account, freeModeEnabled bool, now time.Time) models.AccessDecision {
	if account == nil {
		return models.AccessDecision{}
	}

	if freeModeEnabled {
		// Флаг администратора перекрывает оплату и пробный период.
		// IsPaidSubscriber сообщается как true для отображения.
		return allGranted()
	}

	if account.IsPaidSubscriber && subscriptionActive(account, now) {
		return allGranted()
	}

	trialEnd := account.CreatedAt.Add(r.trialLength)
	if now.Before(trialEnd) {
		return models.AccessDecision{
			IsInTrial:          true,
			CanViewLeaderboard: true,
			CanGenerateCard:    true,
			CanShareGrindCard:  true,
			TrialCountdown:     Countdown(trialEnd.Sub(now)),
		}
	}

	// Пробный период истёк, подписки нет: остаётся только просмотр
	// таблицы лидеров.
	return models.AccessDecision{
		CanViewLeaderboard: true,
	}
}

// subscriptionActive проверяет, что оплаченная подписка ещё действует.
// Отсутствие даты истечения означает бессрочную подписку; дата в прошлом
// гасит флаг IsPaidSubscriber независимо от его значения в хранилище.
func subscriptionActive(account *models.Account, now time.Time) bool {
	if account.SubscriptionExpireAt == nil {
		return true
	}
	return account.SubscriptionExpireAt.After(now)
}

func allGranted() models.AccessDecision {
	return models.AccessDecision{
		IsPaidSubscriber:        true,
		CanViewLeaderboard:      true,
		CanAppearOnLeaderboard:  true,
		CanGenerateCard:         true,
		CanShareGrindCard:       true,
		CanShareWeeklyCard:      true,
		CanShareMonthlyCard:     true,
		CanClickThroughProfiles: true,
		CanShowTrainerCode:      true,
		CanShowSocialLinks:      true,
	}
}

// Countdown раскладывает остаток времени по дням, часам, минутам и
// секундам без двойного счёта: каждая единица — остаток после вычета
// более крупных. Суммарные поля выражают тот же остаток целиком в часах,
// минутах и секундах. Отрицательный остаток обрезается до нуля.
func Countdown(remaining time.Duration) models.TrialCountdown {
	if remaining < 0 {
		remaining = 0
	}

	totalSeconds := int64(remaining / time.Second)
	totalMinutes := int64(remaining / time.Minute)
	totalHours := int64(remaining / time.Hour)

	days := int(totalHours / 24)
	hours := int(totalHours % 24)
	minutes := int(totalMinutes % 60)
	seconds := int(totalSeconds % 60)

	return models.TrialCountdown{
		Days:         days,
		Hours:        hours,
		Minutes:      minutes,
		Seconds:      seconds,
		TotalHours:   totalHours,
		TotalMinutes: totalMinutes,
		TotalSeconds: totalSeconds,
	}
}
