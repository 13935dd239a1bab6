package dashboard

import (
	"math"
	"time"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/timezone"
)

// Day is one tile of the 30-day grid.
type Day struct {
	Day       int              `json:"day"`
	Key       string           `json:"key"`
	State     domain.TileState `json:"state"`
	EntryID   string           `json:"entryId,omitempty"`
	Clickable bool             `json:"clickable"`
}

// Summary is the progress block shown above the grid.
type Summary struct {
	SuccessfulDays int                   `json:"successfulDays"`
	CurrentDay     int                   `json:"currentDay"`
	Progress       float64               `json:"progress"`
	DaysRemaining  int                   `json:"daysRemaining"`
	State          domain.ChallengeState `json:"state"`
}

// Grid derives the tile for every challenge day at now.
//
// A day renders OUT when its own check-in is out, or when the challenge is
// lost and the day is on or after the first out day. Past days without a
// check-in render missing; today without one needs a check-in. Only past,
// not-out days can be clicked.
func (s *Service) Grid(b Board, now time.Time) []Day {
	cur := currentDay(b, now)
	firstOut := b.FirstOutDay()

	days := make([]Day, 0, timezone.ChallengeDays)
	for n := 1; n <= timezone.ChallengeDays; n++ {
		key, _ := b.DayKey(n)
		c, has := b.CheckInByKey(key)

		isPast := n < cur
		isToday := n == cur
		visuallyOut := (has && c.Status == domain.StatusOut) ||
			(b.State == domain.StateOut && firstOut > 0 && n >= firstOut)

		d := Day{Day: n, Key: key}
		if has {
			d.EntryID = c.ID
		}

		switch {
		case visuallyOut:
			d.State = domain.TileOut
		case has:
			d.State = domain.TileIn
		case isToday:
			d.State = domain.TileNeedsCheckIn
		case isPast:
			d.State = domain.TileMissing
		default:
			d.State = domain.TileFuture
		}

		d.Clickable = isPast && !visuallyOut && !(has && c.Status == domain.StatusOut)
		days = append(days, d)
	}
	return days
}

// Summarize computes the progress block at now.
func (s *Service) Summarize(b Board, now time.Time) Summary {
	cur := currentDay(b, now)

	successful := 0
	for _, c := range b.CheckIns {
		if c.Status == domain.StatusIn {
			successful++
		}
	}

	shown := min(cur, timezone.ChallengeDays)
	progress := float64(shown) / timezone.ChallengeDays * 100

	return Summary{
		SuccessfulDays: successful,
		CurrentDay:     cur,
		Progress:       math.Round(progress*10) / 10,
		DaysRemaining:  timezone.ChallengeDays - shown,
		State:          b.State,
	}
}
