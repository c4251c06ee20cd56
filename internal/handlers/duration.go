package handlers

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var durationRE = regexp.MustCompile(`^(\d+)([smhd]?)`)

// parseDuration reads mute spans like "30s", "10m", "2h", "1d". A bare
// number means hours, as does a number with an unknown suffix; input
// without a leading number falls back to one hour.
func parseDuration(s string) time.Duration {
	m := durationRE.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return time.Hour
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Hour
	}
	switch m[2] {
	case "s":
		return time.Duration(n) * time.Second
	case "m":
		return time.Duration(n) * time.Minute
	case "d":
		return time.Duration(n) * 24 * time.Hour
	default:
		return time.Duration(n) * time.Hour
	}
}
