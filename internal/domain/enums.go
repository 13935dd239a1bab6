package domain

// Status is the value recorded for a single day.
type Status string

const (
	StatusIn  Status = "in"
	StatusOut Status = "out"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusIn, StatusOut:
		return true
	}
	return false
}

// ChallengeState is the aggregate state of a try. StateOut is terminal for
// the rest of the month.
type ChallengeState string

const (
	StateIn  ChallengeState = "in"
	StateOut ChallengeState = "out"
)

func (s ChallengeState) String() string { return string(s) }

func (s ChallengeState) IsValid() bool {
	switch s {
	case StateIn, StateOut:
		return true
	}
	return false
}

// TileState is how a single grid day renders.
type TileState string

const (
	TileIn           TileState = "in"
	TileOut          TileState = "out"
	TileMissing      TileState = "missing"
	TileNeedsCheckIn TileState = "needs_checkin"
	TileFuture       TileState = "future"
)

func (s TileState) String() string { return string(s) }

// AgeGroup is an onboarding answer.
type AgeGroup string

const (
	AgeGroup18To24 AgeGroup = "18_24"
	AgeGroup25To34 AgeGroup = "25_34"
	AgeGroup35To44 AgeGroup = "35_44"
	AgeGroup45Plus AgeGroup = "45_plus"
)

func (a AgeGroup) IsValid() bool {
	switch a {
	case AgeGroup18To24, AgeGroup25To34, AgeGroup35To44, AgeGroup45Plus:
		return true
	}
	return false
}

// Gender is an onboarding answer.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderNonBinary      Gender = "non_binary"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary, GenderPreferNotToSay:
		return true
	}
	return false
}

// Participation records whether the user has done the challenge before.
type Participation string

const (
	ParticipationFirstTime          Participation = "first_time"
	ParticipationParticipatedBefore Participation = "participated_before"
	ParticipationCompletedBefore    Participation = "completed_before"
)

func (p Participation) IsValid() bool {
	switch p {
	case ParticipationFirstTime, ParticipationParticipatedBefore, ParticipationCompletedBefore:
		return true
	}
	return false
}

// OutReason is the optional survey answer given when marking a day out.
type OutReason string

const (
	OutReasonEdging       OutReason = "edging-ruined"
	OutReasonPorn         OutReason = "porn"
	OutReasonSex          OutReason = "sex"
	OutReasonStressRelief OutReason = "stress-relief"
	OutReasonAccident     OutReason = "accident"
	OutReasonOther        OutReason = "other"
)

func (r OutReason) IsValid() bool {
	switch r {
	case OutReasonEdging, OutReasonPorn, OutReasonSex, OutReasonStressRelief, OutReasonAccident, OutReasonOther:
		return true
	}
	return false
}

// ChangeType classifies a changelog line.
type ChangeType string

const (
	ChangeFeature     ChangeType = "feature"
	ChangeImprovement ChangeType = "improvement"
	ChangeBugfix      ChangeType = "bugfix"
	ChangeBreaking    ChangeType = "breaking"
)

func (c ChangeType) IsValid() bool {
	switch c {
	case ChangeFeature, ChangeImprovement, ChangeBugfix, ChangeBreaking:
		return true
	}
	return false
}
