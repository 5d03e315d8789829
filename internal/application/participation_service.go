package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/meetup-api/internal/domain/entity"
	repo "github.com/oksasatya/meetup-api/internal/domain/repository"
	"github.com/oksasatya/meetup-api/pkg/helpers"
)

// ParticipationService performs the capacity-respecting join/leave
// transitions. All cross-request safety is delegated to the store's atomic
// conditional update; this service holds no locks and never retries.
type ParticipationService struct {
	Meetups  repo.MeetupRepository
	Users    repo.UserRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewParticipationService(meetups repo.MeetupRepository, users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, cacheTTL time.Duration) *ParticipationService {
	return &ParticipationService{Meetups: meetups, Users: users, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

// Join registers userID as a participant of meetupID. The membership check,
// capacity check and mutation are one conditional update in the store; two
// concurrent joins on the last free slot can never both succeed.
//
// When the update is not applied, a diagnostic read names the failed
// precondition. That read is best-effort only: the row may have changed again
// since the rejected update, so a "full" answer here does not preclude a
// later retry succeeding.
func (s *ParticipationService) Join(ctx context.Context, meetupID, userID string) (*entity.Meetup, error) {
	if _, err := uuid.Parse(meetupID); err != nil {
		return nil, ErrInvalidID
	}

	m, applied, err := s.Meetups.AddParticipant(ctx, meetupID, userID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, s.explainRejectedJoin(ctx, meetupID, userID)
	}

	// The join is committed; the user's cached membership set is a secondary
	// update that must not roll it back on failure.
	if err := s.Users.AddJoinedMeetup(ctx, userID, meetupID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).
			WithFields(logrus.Fields{"meetup_id": meetupID, "user_id": userID}).
			Warn("joined meetup but failed to update user membership cache")
	}

	s.invalidateListing(ctx)
	return m, nil
}

// Leave removes userID from the participant set. Removing a non-member is a
// successful no-op; only a missing meetup is an error.
func (s *ParticipationService) Leave(ctx context.Context, meetupID, userID string) (*entity.Meetup, error) {
	if _, err := uuid.Parse(meetupID); err != nil {
		return nil, ErrInvalidID
	}

	m, err := s.Meetups.RemoveParticipant(ctx, meetupID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMeetupNotFound
		}
		return nil, err
	}

	if err := s.Users.RemoveJoinedMeetup(ctx, userID, meetupID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).
			WithFields(logrus.Fields{"meetup_id": meetupID, "user_id": userID}).
			Warn("left meetup but failed to update user membership cache")
	}

	s.invalidateListing(ctx)
	return m, nil
}

// explainRejectedJoin reads the row once to name the precondition that made
// the conditional update a no-op. Diagnostic only, not trusted for
// correctness.
func (s *ParticipationService) explainRejectedJoin(ctx context.Context, meetupID, userID string) error {
	current, err := s.Meetups.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrMeetupNotFound
		}
		return err
	}
	if current.HasParticipant(userID) {
		return ErrAlreadyJoined
	}
	if current.IsFull() {
		return ErrMeetupFull
	}
	return ErrJoinConflict
}

func (s *ParticipationService) invalidateListing(ctx context.Context) {
	if s.Redis == nil || s.CacheTTL <= 0 {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, upcomingCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("meetup listing cache invalidation failed")
	}
}
