package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and is never serialized outward.
//
// JoinedMeetups is a back-reference cache of meetup ids the user belongs to;
// the authoritative membership record is Meetup.Participants.
type User struct {
	ID            string
	Email         string
	Password      string
	Name          string
	JoinedMeetups []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Participant is the minimal projection of a user exposed when a meetup's
// participant list is resolved.
type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
