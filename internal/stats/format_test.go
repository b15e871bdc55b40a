package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatXPRate(t *testing.T) {
	tests := []struct {
		rate int64
		want string
	}{
		{rate: 0, want: "0"},
		{rate: 999, want: "999"},
		{rate: 1000, want: "1000"},
		{rate: 1001, want: "1.0K"},
		{rate: 12500, want: "12.5K"},
		{rate: 99949, want: "99.9K"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatXPRate(tt.rate), "rate %d", tt.rate)
	}
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "12.3 km", FormatDistance(12.34))
	assert.Equal(t, "0.0 km", FormatDistance(0))
}
