package domain

import "time"

// User is the profile returned by the remote API for the signed-in account.
type User struct {
	ID                     string
	Name                   string
	Email                  string
	EmailVerified          bool
	Image                  *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
	HasCompletedOnboarding bool
}

// RedditAccount is the linked secondary provider account.
type RedditAccount struct {
	Name         string
	ID           string
	IconImg      string
	CreatedUTC   float64
	LinkKarma    int
	CommentKarma int
}

// OnboardingAnswers is the questionnaire submitted once per user.
// Reason is nil when the user skipped it.
type OnboardingAnswers struct {
	AgeGroup     AgeGroup
	Gender       Gender
	HasDoneState Participation
	Reason       *string
}
