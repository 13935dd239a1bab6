// Package changelog serves the release notes and tracks which of them a
// device has acknowledged.
package changelog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/timezone"
)

// seenStore records acknowledged changelog ids per scope.
type seenStore interface {
	SeenChangelogs(ctx context.Context, scope string) ([]string, error)
	MarkChangelogSeen(ctx context.Context, scope, id string) error
}

// Service exposes the changelog catalogue.
type Service struct {
	log     *slog.Logger
	seen    seenStore
	entries []domain.ChangelogEntry
}

// NewService creates a changelog service over the built-in catalogue.
func NewService(logger *slog.Logger, seen seenStore) *Service {
	return &Service{
		log:     logger.With("service", "changelog"),
		seen:    seen,
		entries: entries,
	}
}

// Latest returns the newest entry.
func (s *Service) Latest() (domain.ChangelogEntry, bool) {
	if len(s.entries) == 0 {
		return domain.ChangelogEntry{}, false
	}
	return s.entries[0], true
}

// All returns every entry, newest first.
func (s *Service) All() []domain.ChangelogEntry {
	return slices.Clone(s.entries)
}

// Get returns the entry with the given id.
func (s *Service) Get(id string) (domain.ChangelogEntry, error) {
	i := slices.IndexFunc(s.entries, func(e domain.ChangelogEntry) bool { return e.ID == id })
	if i < 0 {
		return domain.ChangelogEntry{}, fmt.Errorf("changelog %q: %w", id, domain.ErrNotFound)
	}
	return s.entries[i], nil
}

// HasSeen reports whether scope acknowledged the entry.
func (s *Service) HasSeen(ctx context.Context, scope, id string) (bool, error) {
	seen, err := s.seen.SeenChangelogs(ctx, scope)
	if err != nil {
		return false, fmt.Errorf("changelog.HasSeen: %w", err)
	}
	return slices.Contains(seen, id), nil
}

// MarkSeen acknowledges a known entry for scope.
func (s *Service) MarkSeen(ctx context.Context, scope, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.seen.MarkChangelogSeen(ctx, scope, id); err != nil {
		return fmt.Errorf("changelog.MarkSeen: %w", err)
	}
	s.log.DebugContext(ctx, "changelog seen", slog.String("scope", scope), slog.String("id", id))
	return nil
}

// HasUnseen reports whether the newest entry still has to be shown.
func (s *Service) HasUnseen(ctx context.Context, scope string) (bool, error) {
	latest, ok := s.Latest()
	if !ok {
		return false, nil
	}
	seen, err := s.HasSeen(ctx, scope, latest.ID)
	if err != nil {
		return false, err
	}
	return !seen, nil
}

// FormatDate renders a YYYY-MM-DD release date as "November 1, 2025",
// reading it as a calendar date in spec.
func FormatDate(date, spec string) string {
	loc, err := timezone.Location(spec)
	if err != nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return timezone.InvalidDate
	}
	return t.Format(timezone.LayoutLongDate)
}
