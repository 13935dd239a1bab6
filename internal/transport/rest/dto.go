package rest

import (
	"time"

	"github.com/nonutti-ng/web/internal/domain"
)

type userResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	EmailVerified          bool      `json:"emailVerified"`
	Image                  *string   `json:"image"`
	CreatedAt              time.Time `json:"createdAt"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding"`
}

type redditResponse struct {
	Name         string  `json:"name"`
	ID           string  `json:"id"`
	IconImg      string  `json:"iconImg,omitempty"`
	CreatedUTC   float64 `json:"createdUtc"`
	LinkKarma    int     `json:"linkKarma"`
	CommentKarma int     `json:"commentKarma"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:                     u.ID,
		Name:                   u.Name,
		Email:                  u.Email,
		EmailVerified:          u.EmailVerified,
		Image:                  u.Image,
		CreatedAt:              u.CreatedAt,
		HasCompletedOnboarding: u.HasCompletedOnboarding,
	}
}

func toRedditResponse(a *domain.RedditAccount) *redditResponse {
	if a == nil {
		return nil
	}
	return &redditResponse{
		Name:         a.Name,
		ID:           a.ID,
		IconImg:      a.IconImg,
		CreatedUTC:   a.CreatedUTC,
		LinkKarma:    a.LinkKarma,
		CommentKarma: a.CommentKarma,
	}
}
