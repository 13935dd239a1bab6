package timezone

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// offsetPattern accepts ±H, ±HH, ±HMM, ±HHMM, ±H:MM and ±HH:MM with hours 0-23.
var offsetPattern = regexp.MustCompile(`^[+-](?:(?:[0-1][0-9]|2[0-3])(?::?[0-5][0-9])?|[0-9](?::?[0-5][0-9])?)$`)

// IsUTCOffset reports whether spec is written as an offset rather than a zone name.
func IsUTCOffset(spec string) bool {
	return strings.HasPrefix(spec, "+") || strings.HasPrefix(spec, "-")
}

// IsValidUTCOffset reports whether raw matches the offset grammar. No range
// check is applied beyond what the grammar itself enforces.
func IsValidUTCOffset(raw string) bool {
	return offsetPattern.MatchString(raw)
}

// NormalizeUTCOffset rewrites a valid offset into the canonical ±HH:MM form.
// Input that does not match the grammar is returned unchanged.
func NormalizeUTCOffset(raw string) string {
	if !IsValidUTCOffset(raw) {
		return raw
	}

	sign := raw[:1]
	digits := strings.Replace(raw[1:], ":", "", 1)

	switch len(digits) {
	case 1:
		digits = "0" + digits + "00"
	case 2:
		digits += "00"
	case 3:
		digits = "0" + digits
	}

	return sign + digits[:2] + ":" + digits[2:4]
}

// fixedZone builds a location for a normalized offset. Offsets never observe DST.
func fixedZone(normalized string) *time.Location {
	hours, _ := strconv.Atoi(normalized[1:3])
	minutes, _ := strconv.Atoi(normalized[4:6])

	seconds := hours*3600 + minutes*60
	if normalized[0] == '-' {
		seconds = -seconds
	}

	return time.FixedZone("UTC"+normalized, seconds)
}
