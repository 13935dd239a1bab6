package domain

import "time"

// Try is one user's attempt at a given year's challenge.
type Try struct {
	TryID     string
	UserID    string
	Year      int
	State     ChallengeState
	CreatedAt time.Time
}

// Entry is a server-of-record fact for one logged day. Date is a UTC instant.
type Entry struct {
	EntryID   string
	TryID     string
	Date      time.Time
	Status    Status
	CreatedAt time.Time
}

// TryWithEntries is the payload of the current-try endpoint.
type TryWithEntries struct {
	Try     Try
	Entries []Entry
}

// CheckIn projects an Entry into a display timezone. Date is a day key;
// a collection holds at most one CheckIn per key.
type CheckIn struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Status Status `json:"status"`
}

// ChangelogEntry is one release note.
type ChangelogEntry struct {
	ID          string   `json:"id"`
	Version     string   `json:"version"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Changes     []Change `json:"changes"`
}

// Change is a single line of a changelog entry.
type Change struct {
	Type        ChangeType `json:"type"`
	Description string     `json:"description"`
}
