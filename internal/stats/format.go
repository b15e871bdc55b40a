package stats

import (
	"fmt"
	"strconv"
)

// FormatXPRate форматирует суточный темп опыта для карточек: значения
// выше тысячи сокращаются K-суффиксом с одним знаком после запятой.
// Форматирование отделено от вычисления дельты, движок отдаёт сырые
// единицы.
func FormatXPRate(xpPerDay int64) string {
	if xpPerDay > 1000 {
		return fmt.Sprintf("%.1fK", float64(xpPerDay)/1000)
	}
	return strconv.FormatInt(xpPerDay, 10)
}

// FormatDistance форматирует километры с одним знаком после запятой.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}
