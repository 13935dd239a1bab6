// Package timezone maps UTC instants onto a display timezone. A display
// timezone is either an IANA zone name or a fixed UTC offset such as "+05:30".
package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// InvalidDate is returned by the formatting helpers instead of an error.
const InvalidDate = "Invalid date"

// Layouts for the formatting helpers.
const (
	LayoutDate        = "Jan 2, 2006"
	LayoutDateWithDay = "Mon, Jan 2, 2006"
	LayoutDateTime    = "Jan 2, 2006 3:04 PM"
	LayoutTime        = "3:04 PM"
	LayoutDayKey      = "Mon Jan 02 2006"
	LayoutLongDate    = "January 2, 2006"

	layoutUTCISO = "2006-01-02T15:04:05.000Z"
)

// ErrInvalidZone is returned when a spec is neither a valid offset nor a known zone.
var ErrInvalidZone = errors.New("invalid timezone")

var errInvalidDate = errors.New("invalid date")

// isoLayouts are tried in order when parsing string input. Zone-less
// values are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Input is the set of date representations accepted by the package:
// an ISO-8601 string, epoch milliseconds, or a time.Time.
type Input interface {
	string | int64 | time.Time
}

// Location resolves spec to a *time.Location. Offsets become fixed zones;
// anything else must be a loadable IANA name.
func Location(spec string) (*time.Location, error) {
	if IsUTCOffset(spec) {
		if !IsValidUTCOffset(spec) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidZone, spec)
		}
		return fixedZone(NormalizeUTCOffset(spec)), nil
	}

	name := strings.TrimSpace(spec)
	if name == "" || strings.EqualFold(name, "local") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, spec)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, spec)
	}
	return loc, nil
}

// IsValid reports whether spec resolves to a location.
func IsValid(spec string) bool {
	_, err := Location(spec)
	return err == nil
}

// Canonical returns the form of spec that should be stored: normalized
// offsets, IANA names untouched.
func Canonical(spec string) string {
	if IsUTCOffset(spec) {
		return NormalizeUTCOffset(spec)
	}
	return strings.TrimSpace(spec)
}

// ParseToInstant reads date as a UTC instant and projects it into spec.
func ParseToInstant[T Input](date T, spec string) (time.Time, error) {
	loc, err := Location(spec)
	if err != nil {
		return time.Time{}, err
	}

	t, err := toUTC(date)
	if err != nil {
		return time.Time{}, err
	}

	return t.In(loc), nil
}

func toUTC[T Input](date T) (time.Time, error) {
	switch v := any(date).(type) {
	case string:
		return parseISO(v)
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case time.Time:
		if v.IsZero() {
			return time.Time{}, errInvalidDate
		}
		return v.UTC(), nil
	}
	return time.Time{}, errInvalidDate
}

func parseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, s)
}

// CurrentAt projects now into spec.
func CurrentAt(now time.Time, spec string) (time.Time, error) {
	loc, err := Location(spec)
	if err != nil {
		return time.Time{}, err
	}
	return now.In(loc), nil
}

// Current is CurrentAt with the wall clock.
func Current(spec string) (time.Time, error) {
	return CurrentAt(time.Now(), spec)
}

// Format renders date in spec using a Go layout. It never fails; bad input
// or an unknown zone yields InvalidDate.
func Format[T Input](date T, spec, layout string) string {
	t, err := ParseToInstant(date, spec)
	if err != nil {
		return InvalidDate
	}
	return t.Format(layout)
}

// FormatDate renders "Nov 15, 2025".
func FormatDate[T Input](date T, spec string) string {
	return Format(date, spec, LayoutDate)
}

// FormatDateWithDay renders "Sat, Nov 15, 2025".
func FormatDateWithDay[T Input](date T, spec string) string {
	return Format(date, spec, LayoutDateWithDay)
}

// FormatDateTime renders "Nov 15, 2025 3:45 PM".
func FormatDateTime[T Input](date T, spec string) string {
	return Format(date, spec, LayoutDateTime)
}

// FormatTime renders "3:45 PM".
func FormatTime[T Input](date T, spec string) string {
	return Format(date, spec, LayoutTime)
}

// FormatRelative renders Today, Yesterday or Tomorrow relative to now in
// spec, falling back to FormatDate for anything further away.
func FormatRelative[T Input](date T, spec string, now time.Time) string {
	target, err := ParseToInstant(date, spec)
	if err != nil {
		return InvalidDate
	}

	switch daysBetween(target, now.In(target.Location())) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	case -1:
		return "Tomorrow"
	}
	return target.Format(LayoutDate)
}

// IsToday reports whether date falls on the same wall-clock day as now in spec.
func IsToday[T Input](date T, spec string, now time.Time) bool {
	target, err := ParseToInstant(date, spec)
	if err != nil {
		return false
	}
	return daysBetween(target, now.In(target.Location())) == 0
}

// DayKey is the per-day join key used between instants and check-ins,
// e.g. "Mon Nov 03 2025". Two instants on the same wall-clock day in spec
// always produce the same key.
func DayKey[T Input](date T, spec string) string {
	return Format(date, spec, LayoutDayKey)
}

// ParseDayKey returns the calendar date encoded in a key produced by DayKey.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(LayoutDayKey, key)
}

// ToUTCISOString serializes t for the remote API, e.g. "2025-11-03T05:00:00.000Z".
func ToUTCISOString(t time.Time) string {
	return t.UTC().Format(layoutUTCISO)
}

// daysBetween counts calendar days from target to today, both read in
// their own locations. Computed on civil dates so DST never skews it.
func daysBetween(target, today time.Time) int {
	a := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
