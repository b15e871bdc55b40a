package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "среда внутри недели",
			now:  time.Date(2024, 6, 12, 18, 30, 0, 0, time.UTC),
			want: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "само воскресенье",
			now:  time.Date(2024, 6, 9, 0, 0, 1, 0, time.UTC),
			want: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "суббота перед новой неделей",
			now:  time.Date(2024, 6, 8, 23, 59, 59, 0, time.UTC),
			want: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "неделя через границу месяца",
			now:  time.Date(2024, 7, 2, 12, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.now))
		})
	}
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthStart(time.Date(2024, 6, 21, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		MonthStart(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, DaysBetween(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(
		time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)))
	// Время суток не влияет, считаются календарные даты.
	assert.Equal(t, 1, DaysBetween(
		time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC)))
}
