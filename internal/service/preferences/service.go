// Package preferences stores per-device settings: the display timezone,
// acknowledged changelogs and the countdown override.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/timezone"
)

// Setting keys.
const (
	KeyTimezone       = "nnn_user_timezone"
	KeySeenChangelogs = "nnn_seen_changelogs"
	KeyDevOverride    = "nnn_dev_override"
)

// DefaultTimezone is used until a user picks one.
const DefaultTimezone = "America/New_York"

// settingsStore is the key-value store the preferences live in.
type settingsStore interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
	Update(ctx context.Context, scope, key string, fn func(current string, ok bool) (string, error)) error
}

// Service reads and writes preferences for one scope at a time.
type Service struct {
	log   *slog.Logger
	store settingsStore
	now   func() time.Time
}

// NewService creates a preferences service. A nil clock means time.Now.
func NewService(logger *slog.Logger, store settingsStore, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		log:   logger.With("service", "preferences"),
		store: store,
		now:   now,
	}
}

// TimezonePreference is the stored form of the timezone setting.
type TimezonePreference struct {
	Timezone    string `json:"timezone"`
	LastUpdated string `json:"lastUpdated"`
}

// Timezone returns the preferred timezone, or DefaultTimezone when none is
// stored or the stored value can't be used.
func (s *Service) Timezone(ctx context.Context, scope string) (string, error) {
	raw, ok, err := s.store.Get(ctx, scope, KeyTimezone)
	if err != nil {
		return "", fmt.Errorf("preferences.Timezone: %w", err)
	}
	if !ok {
		return DefaultTimezone, nil
	}

	var pref TimezonePreference
	if err := json.Unmarshal([]byte(raw), &pref); err != nil || !timezone.IsValid(pref.Timezone) {
		s.log.WarnContext(ctx, "unreadable timezone preference", slog.String("scope", scope), slog.String("value", raw))
		return DefaultTimezone, nil
	}
	return timezone.Canonical(pref.Timezone), nil
}

// SetTimezone validates and stores spec. Offsets are normalized to ±HH:MM
// first. It returns the stored form.
func (s *Service) SetTimezone(ctx context.Context, scope, spec string) (string, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return "", domain.NewValidationError("timezone", "required")
	case timezone.IsUTCOffset(spec) && !timezone.IsValidUTCOffset(spec):
		return "", domain.NewValidationError("timezone", "invalid UTC offset, use a format like +05:30 or -07:00")
	case !timezone.IsValid(spec):
		return "", domain.NewValidationError("timezone", "unknown timezone")
	}

	spec = timezone.Canonical(spec)
	raw, err := json.Marshal(TimezonePreference{
		Timezone:    spec,
		LastUpdated: timezone.ToUTCISOString(s.now()),
	})
	if err != nil {
		return "", fmt.Errorf("preferences.SetTimezone: %w", err)
	}

	if err := s.store.Set(ctx, scope, KeyTimezone, string(raw)); err != nil {
		return "", fmt.Errorf("preferences.SetTimezone: %w", err)
	}

	s.log.InfoContext(ctx, "timezone updated", slog.String("scope", scope), slog.String("timezone", spec))
	return spec, nil
}

// ClearTimezone drops the stored timezone so the default applies again.
func (s *Service) ClearTimezone(ctx context.Context, scope string) error {
	if err := s.store.Delete(ctx, scope, KeyTimezone); err != nil {
		return fmt.Errorf("preferences.ClearTimezone: %w", err)
	}
	return nil
}

// SeenChangelogs returns the ids of acknowledged changelog entries.
func (s *Service) SeenChangelogs(ctx context.Context, scope string) ([]string, error) {
	raw, ok, err := s.store.Get(ctx, scope, KeySeenChangelogs)
	if err != nil {
		return nil, fmt.Errorf("preferences.SeenChangelogs: %w", err)
	}
	if !ok {
		return []string{}, nil
	}
	return s.decodeSeen(ctx, scope, raw), nil
}

// MarkChangelogSeen adds id to the acknowledged list. Marking twice is a no-op.
func (s *Service) MarkChangelogSeen(ctx context.Context, scope, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("id", "required")
	}

	err := s.store.Update(ctx, scope, KeySeenChangelogs, func(current string, ok bool) (string, error) {
		seen := []string{}
		if ok {
			seen = s.decodeSeen(ctx, scope, current)
		}
		if !slices.Contains(seen, id) {
			seen = append(seen, id)
		}
		raw, err := json.Marshal(seen)
		return string(raw), err
	})
	if err != nil {
		return fmt.Errorf("preferences.MarkChangelogSeen: %w", err)
	}
	return nil
}

func (s *Service) decodeSeen(ctx context.Context, scope, raw string) []string {
	var seen []string
	if err := json.Unmarshal([]byte(raw), &seen); err != nil {
		s.log.WarnContext(ctx, "unreadable seen changelogs", slog.String("scope", scope))
		return []string{}
	}
	if seen == nil {
		seen = []string{}
	}
	return seen
}

// DevOverride reports whether the countdown page is bypassed for scope.
func (s *Service) DevOverride(ctx context.Context, scope string) (bool, error) {
	raw, ok, err := s.store.Get(ctx, scope, KeyDevOverride)
	if err != nil {
		return false, fmt.Errorf("preferences.DevOverride: %w", err)
	}
	if !ok {
		return false, nil
	}
	v, _ := strconv.ParseBool(raw)
	return v, nil
}

// ToggleDevOverride flips the countdown bypass and returns the new value.
func (s *Service) ToggleDevOverride(ctx context.Context, scope string) (bool, error) {
	var next bool
	err := s.store.Update(ctx, scope, KeyDevOverride, func(current string, ok bool) (string, error) {
		v, _ := strconv.ParseBool(current)
		next = !v
		return strconv.FormatBool(next), nil
	})
	if err != nil {
		return false, fmt.Errorf("preferences.ToggleDevOverride: %w", err)
	}

	s.log.InfoContext(ctx, "dev override toggled", slog.String("scope", scope), slog.Bool("enabled", next))
	return next, nil
}
