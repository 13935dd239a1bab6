package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/timezone"
)

// errorBody is the optional envelope carried by non-2xx responses.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type apiUser struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	EmailVerified          bool      `json:"emailVerified"`
	Image                  *string   `json:"image"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding"`
}

func (u apiUser) toDomain() domain.User {
	return domain.User{
		ID:                     u.ID,
		Name:                   u.Name,
		Email:                  u.Email,
		EmailVerified:          u.EmailVerified,
		Image:                  u.Image,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
		HasCompletedOnboarding: u.HasCompletedOnboarding,
	}
}

// apiTry.Year arrives as a string from some deployments and as a number
// from others.
type apiTry struct {
	TryID     string      `json:"tryId"`
	UserID    string      `json:"userId"`
	Year      json.Number `json:"year"`
	State     string      `json:"state"`
	CreatedAt time.Time   `json:"createdAt"`
}

// apiEntry.Date is kept raw: some deployments send it without a zone
// designator, which time.Time cannot decode. Zone-less dates are UTC.
type apiEntry struct {
	EntryID   string    `json:"entryId"`
	TryID     string    `json:"tryId"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type apiTryWithEntries struct {
	Try     apiTry     `json:"try"`
	Entries []apiEntry `json:"entries"`
}

func (t apiTryWithEntries) toDomain() (domain.TryWithEntries, error) {
	year, _ := t.Try.Year.Int64()
	out := domain.TryWithEntries{
		Try: domain.Try{
			TryID:     t.Try.TryID,
			UserID:    t.Try.UserID,
			Year:      int(year),
			State:     domain.ChallengeState(t.Try.State),
			CreatedAt: t.Try.CreatedAt,
		},
		Entries: make([]domain.Entry, 0, len(t.Entries)),
	}
	for _, e := range t.Entries {
		date, err := timezone.ParseToInstant(e.Date, "+00:00")
		if err != nil {
			return domain.TryWithEntries{}, fmt.Errorf("api: entry %s date: %w", e.EntryID, err)
		}
		out.Entries = append(out.Entries, domain.Entry{
			EntryID:   e.EntryID,
			TryID:     e.TryID,
			Date:      date.UTC(),
			Status:    domain.Status(e.Status),
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

type apiRedditAccount struct {
	Name         string  `json:"name"`
	ID           string  `json:"id"`
	IconImg      string  `json:"icon_img"`
	CreatedUTC   float64 `json:"created_utc"`
	LinkKarma    int     `json:"link_karma"`
	CommentKarma int     `json:"comment_karma"`
}

type logRequest struct {
	Date   string        `json:"date,omitempty"`
	Status domain.Status `json:"status"`
}

type logResponse struct {
	ID string `json:"id"`
}

type onboardRequest struct {
	AgeGroup     domain.AgeGroup      `json:"ageGroup"`
	Gender       domain.Gender        `json:"gender"`
	HasDoneState domain.Participation `json:"hasDoneState"`
	Reason       *string              `json:"reason,omitempty"`
}
