package handlers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"10m", 10 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"5", 5 * time.Hour},
		{"10x", 10 * time.Hour},
		{"15minutes", 15 * time.Minute},
		{"10M", 10 * time.Minute},
		{" 10m ", 10 * time.Minute},
		{"", time.Hour},
		{"soon", time.Hour},
		{"m10", time.Hour},
		{"-5m", time.Hour},
	}
	for _, tc := range cases {
		if got := parseDuration(tc.in); got != tc.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
