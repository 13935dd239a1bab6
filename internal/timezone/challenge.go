package timezone

import (
	"fmt"
	"time"
)

const (
	// ChallengeMonth is the month the challenge runs in.
	ChallengeMonth = time.November
	// ChallengeDays is the length of the challenge grid.
	ChallengeDays = 30
)

// CreateDayInMonth returns midnight of the given challenge-month day in spec.
// It is the canonical timestamp for a grid day.
func CreateDayInMonth(year, day int, spec string) (time.Time, error) {
	if day < 1 || day > ChallengeDays {
		return time.Time{}, fmt.Errorf("day %d out of range 1..%d", day, ChallengeDays)
	}

	loc, err := Location(spec)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(year, ChallengeMonth, day, 0, 0, 0, 0, loc), nil
}

// ChallengeDay returns the current day number of the challenge that runs in
// year: 0 before it starts, 1..30 while it runs and ChallengeDays+1 once it
// is over.
func ChallengeDay(now time.Time, year int, spec string) (int, error) {
	local, err := CurrentAt(now, spec)
	if err != nil {
		return 0, err
	}

	start := time.Date(year, ChallengeMonth, 1, 0, 0, 0, 0, local.Location())
	switch {
	case local.Before(start):
		return 0, nil
	case local.Year() == year && local.Month() == ChallengeMonth:
		return local.Day(), nil
	default:
		return ChallengeDays + 1, nil
	}
}

// InChallengeMonth reports whether now falls in the challenge month in spec.
// An unknown zone reports false.
func InChallengeMonth(now time.Time, spec string) bool {
	local, err := CurrentAt(now, spec)
	if err != nil {
		return false
	}
	return local.Month() == ChallengeMonth
}

// Countdown is the time left until the next challenge starts.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// UntilChallenge returns the time from now until midnight on the first day of
// the next challenge month in spec. Once the month has started the target
// moves to the following year.
func UntilChallenge(now time.Time, spec string) (Countdown, error) {
	local, err := CurrentAt(now, spec)
	if err != nil {
		return Countdown{}, err
	}

	year := local.Year()
	if local.Month() >= ChallengeMonth {
		year++
	}

	start := time.Date(year, ChallengeMonth, 1, 0, 0, 0, 0, local.Location())
	total := int64(start.Sub(local) / time.Second)

	return Countdown{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}, nil
}
