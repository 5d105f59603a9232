package model

import (
	"fmt"
	"strconv"
	"strings"
)

const zeroDuration = "00:00:00"

// NormalizeDuration turns free text typed as H, H:M or H:M:S into the
// zero-padded HH:MM:SS form the API stores. Characters other than digits and
// colons are dropped first; parts that fail to parse count as zero.
func NormalizeDuration(text string) string {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ':' {
			return r
		}
		return -1
	}, text)
	if clean == "" {
		return zeroDuration
	}

	parts := strings.Split(clean, ":")
	if len(parts) > 3 {
		return zeroDuration
	}

	var hms [3]int
	for i, p := range parts {
		hms[i] = leadingInt(p)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hms[0], hms[1], hms[2])
}

// DisplayDuration trims a stored HH:MM:SS value to HH:MM for edit forms.
func DisplayDuration(stored string) string {
	if stored == "" {
		return ""
	}
	parts := strings.Split(stored, ":")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ":")
}

func leadingInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
