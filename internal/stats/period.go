// Package stats реализует движок вычисления дельт игровых счётчиков за
// период. Движок — чистая функция над переданной историей снапшотов:
// не выполняет I/O, а история должна быть отсортирована по возрастанию
// (entry_date, created_at) вызывающей стороной.
package stats

import "time"

// PeriodKind задаёт режим вычисления периода.
type PeriodKind string

const (
	// PeriodRange явный диапазон дат [start, end] включительно.
	PeriodRange PeriodKind = "range"
	// PeriodWeek текущая календарная неделя, начало — воскресенье 00:00 UTC.
	PeriodWeek PeriodKind = "week"
	// PeriodMonth текущий календарный месяц, начало — первое число 00:00 UTC.
	PeriodMonth PeriodKind = "month"
	// PeriodAllTime всё время с регистрации, база — нулевые счётчики.
	PeriodAllTime PeriodKind = "all"
)

// PeriodSpec описывает запрошенный период. Start и End используются
// только в режиме PeriodRange.
type PeriodSpec struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
}

// ExplicitRange возвращает PeriodSpec для явного диапазона дат.
func ExplicitRange(start, end time.Time) PeriodSpec {
	return PeriodSpec{Kind: PeriodRange, Start: start, End: end}
}

// CurrentWeek возвращает PeriodSpec текущей календарной недели.
func CurrentWeek() PeriodSpec { return PeriodSpec{Kind: PeriodWeek} }

// CurrentMonth возвращает PeriodSpec текущего календарного месяца.
func CurrentMonth() PeriodSpec { return PeriodSpec{Kind: PeriodMonth} }

// AllTime возвращает PeriodSpec за всё время с регистрации.
func AllTime() PeriodSpec { return PeriodSpec{Kind: PeriodAllTime} }

// WeekStart возвращает начало текущей календарной недели: ближайшее
// прошедшее воскресенье 00:00 UTC.
func WeekStart(now time.Time) time.Time {
	d := now.UTC()
	return time.Date(d.Year(), d.Month(), d.Day()-int(d.Weekday()), 0, 0, 0, 0, time.UTC)
}

// MonthStart возвращает начало текущего календарного месяца, 00:00 UTC.
func MonthStart(now time.Time) time.Time {
	d := now.UTC()
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DateOnly обрезает время до календарной даты в UTC.
func DateOnly(t time.Time) time.Time {
	d := t.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween считает количество календарных дней между двумя датами.
func DaysBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)) / (24 * time.Hour))
}
