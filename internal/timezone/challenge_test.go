package timezone

import (
	"testing"
	"time"
)

func TestChallengeDay(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		spec string
		want int
	}{
		{"fifth", time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC), "UTC", 5},
		{"before start", time.Date(2025, 10, 31, 12, 0, 0, 0, time.UTC), "UTC", 0},
		{"already started east", time.Date(2025, 10, 31, 12, 0, 0, 0, time.UTC), "+14:00", 1},
		{"still october west", time.Date(2025, 11, 1, 3, 0, 0, 0, time.UTC), "America/Los_Angeles", 0},
		{"over", time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC), "UTC", ChallengeDays + 1},
		{"next year", time.Date(2026, 11, 3, 12, 0, 0, 0, time.UTC), "UTC", ChallengeDays + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChallengeDay(tt.now, 2025, tt.spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ChallengeDay = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInChallengeMonth(t *testing.T) {
	now := time.Date(2025, 11, 1, 3, 0, 0, 0, time.UTC)

	if !InChallengeMonth(now, "UTC") {
		t.Error("Nov 1 03:00Z is November in UTC")
	}
	if InChallengeMonth(now, "America/Los_Angeles") {
		t.Error("Nov 1 03:00Z is still October in Los Angeles")
	}
	if InChallengeMonth(now, "Nowhere/Special") {
		t.Error("unknown zone should report false")
	}
}

func TestUntilChallenge(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		spec string
		want Countdown
	}{
		{"one day", time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), "UTC", Countdown{Days: 1}},
		{"mixed", time.Date(2025, 10, 30, 22, 30, 15, 0, time.UTC), "UTC", Countdown{Days: 1, Hours: 1, Minutes: 29, Seconds: 45}},
		{"offset zone", time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), "+05:00", Countdown{Hours: 19}},
		{"during november targets next year", time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), "UTC", Countdown{Days: 361}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UntilChallenge(tt.now, tt.spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("UntilChallenge = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUntilChallenge_InvalidZone(t *testing.T) {
	if _, err := UntilChallenge(time.Now(), "+99:99"); err == nil {
		t.Error("expected error for invalid offset")
	}
}
