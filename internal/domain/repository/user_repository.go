package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/meetup-api/internal/domain/entity"
)

// Storage-level sentinel errors shared by all repository implementations.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the interface for user-related database operations.
// Emails are stored lowercase; lookups expect the caller to normalize first.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Participants resolves user ids to their minimal projection, skipping
	// ids that no longer exist.
	Participants(ctx context.Context, ids []string) ([]entity.Participant, error)

	// AddJoinedMeetup / RemoveJoinedMeetup maintain the user's cached
	// membership set. Both are idempotent.
	AddJoinedMeetup(ctx context.Context, userID, meetupID string) error
	RemoveJoinedMeetup(ctx context.Context, userID, meetupID string) error

	// RemoveMeetupFromAll pulls meetupID out of every user's cached
	// membership set (cleanup after a meetup is deleted).
	RemoveMeetupFromAll(ctx context.Context, meetupID string) error
}
