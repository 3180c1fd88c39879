package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatThousands(tt.in), "formatThousands(%d)", tt.in)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-5, "0s"},
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m 30s"},
		{3600, "1h"},
		{5400, "1h 30m"},
		{86400, "24h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), "formatDuration(%d)", tt.in)
	}
}
