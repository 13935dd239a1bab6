package dashboard

import (
	"slices"
	"time"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/timezone"
)

// Board is the dashboard state for one try, projected into a timezone.
// Operations never mutate a Board in place; they return a replacement.
type Board struct {
	Timezone          string
	Year              int
	TryID             string
	State             domain.ChallengeState
	CheckIns          []domain.CheckIn
	Entries           []domain.Entry
	HasCheckedInToday bool
}

func (b Board) clone() Board {
	b.CheckIns = slices.Clone(b.CheckIns)
	b.Entries = slices.Clone(b.Entries)
	return b
}

// CheckInByKey returns the check-in stored under a day key.
func (b Board) CheckInByKey(key string) (domain.CheckIn, bool) {
	i := slices.IndexFunc(b.CheckIns, func(c domain.CheckIn) bool { return c.Date == key })
	if i < 0 {
		return domain.CheckIn{}, false
	}
	return b.CheckIns[i], true
}

// DayKey returns the key of a challenge day in the board's timezone.
func (b Board) DayKey(day int) (string, error) {
	t, err := timezone.CreateDayInMonth(b.Year, day, b.Timezone)
	if err != nil {
		return "", err
	}
	return timezone.DayKey(t, b.Timezone), nil
}

// CheckInForDay returns the check-in of a challenge day.
func (b Board) CheckInForDay(day int) (domain.CheckIn, bool) {
	key, err := b.DayKey(day)
	if err != nil {
		return domain.CheckIn{}, false
	}
	return b.CheckInByKey(key)
}

// FirstOutDay returns the earliest challenge day with an OUT check-in,
// or 0 when there is none. It deliberately takes the minimum day rather
// than the first OUT in CheckIns order, so a backfilled earlier failure
// moves the cut-off back regardless of when it was recorded.
func (b Board) FirstOutDay() int {
	first := 0
	for _, c := range b.CheckIns {
		if c.Status != domain.StatusOut {
			continue
		}
		day, ok := b.challengeDayOf(c.Date)
		if !ok {
			continue
		}
		if first == 0 || day < first {
			first = day
		}
	}
	return first
}

// challengeDayOf maps a day key to its day number when it falls inside the
// board's challenge month.
func (b Board) challengeDayOf(key string) (int, bool) {
	t, err := timezone.ParseDayKey(key)
	if err != nil {
		return 0, false
	}
	if t.Year() != b.Year || t.Month() != timezone.ChallengeMonth || t.Day() > timezone.ChallengeDays {
		return 0, false
	}
	return t.Day(), true
}

// withCheckIn stores c under its key, replacing any previous check-in for
// that day.
func (b Board) withCheckIn(c domain.CheckIn) Board {
	out := b.clone()
	out.CheckIns = slices.DeleteFunc(out.CheckIns, func(x domain.CheckIn) bool { return x.Date == c.Date })
	out.CheckIns = append(out.CheckIns, c)
	return out
}

// projectEntries folds entries into check-ins keyed by day in spec.
// A later entry for the same day replaces the earlier one.
func projectEntries(entries []domain.Entry, spec string) []domain.CheckIn {
	checkIns := make([]domain.CheckIn, 0, len(entries))
	index := make(map[string]int, len(entries))

	for _, e := range entries {
		c := domain.CheckIn{
			ID:     e.EntryID,
			Date:   timezone.DayKey(e.Date, spec),
			Status: e.Status,
		}
		if i, ok := index[c.Date]; ok {
			checkIns[i] = c
			continue
		}
		index[c.Date] = len(checkIns)
		checkIns = append(checkIns, c)
	}
	return checkIns
}

// recentCheckInWindow is how long after the latest entry a user still
// counts as checked in, covering entries stored under a neighbouring day
// by an older timezone setting.
const recentCheckInWindow = 20 * time.Hour

// CheckedInToday reports whether the user already checked in for the
// current day in spec. An exact day-key match wins; otherwise the most
// recent entry counts when it is less than 20 hours old.
func CheckedInToday(checkIns []domain.CheckIn, entries []domain.Entry, now time.Time, spec string) bool {
	if len(checkIns) == 0 {
		return false
	}

	today := timezone.DayKey(now, spec)
	if slices.ContainsFunc(checkIns, func(c domain.CheckIn) bool { return c.Date == today }) {
		return true
	}

	if len(entries) == 0 {
		return false
	}
	latest := slices.MaxFunc(entries, func(a, b domain.Entry) int { return a.Date.Compare(b.Date) })
	return now.Sub(latest.Date) < recentCheckInWindow
}
