package repository

import (
	"context"
	"time"

	"github.com/oksasatya/meetup-api/internal/domain/entity"
)

// MeetupRepository defines the interface for meetup persistence.
//
// AddParticipant is the one operation with a concurrency contract: the
// membership check, capacity check and mutation must happen as a single
// atomic conditional update in the storage engine. Implementations must not
// decompose it into read-then-write steps.
type MeetupRepository interface {
	Create(ctx context.Context, m *entity.Meetup) error
	GetByID(ctx context.Context, id string) (*entity.Meetup, error)

	// ListUpcoming returns meetups with date >= now, ascending by date.
	ListUpcoming(ctx context.Context, now time.Time) ([]entity.Meetup, error)

	// Delete removes the meetup row. ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// AddParticipant appends userID to the participant set only if the meetup
	// exists, userID is not already a member, and the set is below capacity.
	// applied is false when the predicate did not hold; the caller then reads
	// the row to produce a precise error.
	AddParticipant(ctx context.Context, meetupID, userID string) (m *entity.Meetup, applied bool, err error)

	// RemoveParticipant unconditionally removes userID from the participant
	// set; removing a non-member is a no-op. ErrNotFound when the meetup row
	// is absent.
	RemoveParticipant(ctx context.Context, meetupID, userID string) (*entity.Meetup, error)
}
