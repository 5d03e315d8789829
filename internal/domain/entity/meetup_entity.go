package entity

import (
	"time"
)

// CategoryOptions is the fixed set of categories a meetup may be tagged with.
var CategoryOptions = []string{"Tech", "Sport", "Art", "Food", "Music", "Business"}

// Meetup is the aggregate root for the meetup domain.
// Participants holds user ids with unique membership; its length never
// exceeds MaxParticipants.
type Meetup struct {
	ID              string
	Title           string
	Description     string
	Date            time.Time
	Location        string
	Host            string
	MaxParticipants int
	Participants    []string
	Categories      []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsFull reports whether the meetup has reached its capacity.
// Derived on read, never stored.
func (m *Meetup) IsFull() bool {
	return len(m.Participants) >= m.MaxParticipants
}

// HasParticipant reports whether userID is in the participant set.
func (m *Meetup) HasParticipant(userID string) bool {
	for _, p := range m.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// NormalizeCategories deduplicates in while preserving order and collects the
// values not present in CategoryOptions. An empty invalid slice means every
// entry was allowed. unique is never nil: the storage layer binds it to a
// NOT NULL array column, where a nil slice would encode as SQL NULL.
func NormalizeCategories(in []string) (unique []string, invalid []string) {
	unique = []string{}
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if !isAllowedCategory(c) {
			invalid = append(invalid, c)
			continue
		}
		unique = append(unique, c)
	}
	return unique, invalid
}

func isAllowedCategory(c string) bool {
	for _, opt := range CategoryOptions {
		if opt == c {
			return true
		}
	}
	return false
}
