package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/meetup-api/internal/domain/entity"
	repo "github.com/oksasatya/meetup-api/internal/domain/repository"
	"github.com/oksasatya/meetup-api/pkg/helpers"
)

const upcomingCacheKey = "meetups:upcoming"

const defaultMaxParticipants = 20

// MeetupService is the query/command surface for meetup records: create,
// list, get, delete. Membership transitions live in ParticipationService.
type MeetupService struct {
	Meetups  repo.MeetupRepository
	Users    repo.UserRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewMeetupService(meetups repo.MeetupRepository, users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, cacheTTL time.Duration) *MeetupService {
	return &MeetupService{Meetups: meetups, Users: users, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

type CreateMeetupInput struct {
	Title           string
	Description     string
	Date            time.Time
	Location        string
	Host            string
	MaxParticipants *int
	Categories      []string
}

// Create validates the fields and persists a new meetup. Unknown categories
// are reported individually alongside the allowed enumeration; duplicates are
// silently deduplicated.
func (s *MeetupService) Create(ctx context.Context, in CreateMeetupInput) (*entity.Meetup, error) {
	title := strings.TrimSpace(in.Title)
	host := strings.TrimSpace(in.Host)

	if title == "" {
		return nil, NewValidationError("title", "is required")
	}
	if in.Date.IsZero() {
		return nil, NewValidationError("date", "is required")
	}
	if host == "" {
		return nil, NewValidationError("host", "is required")
	}

	maxParticipants := defaultMaxParticipants
	if in.MaxParticipants != nil {
		if *in.MaxParticipants <= 0 {
			return nil, NewValidationError("max_participants", "must be greater than 0")
		}
		maxParticipants = *in.MaxParticipants
	}

	categories, invalid := entity.NormalizeCategories(in.Categories)
	if len(invalid) > 0 {
		return nil, &InvalidCategoriesError{Invalid: invalid, Allowed: entity.CategoryOptions}
	}

	m := &entity.Meetup{
		Title:           title,
		Description:     in.Description,
		Date:            in.Date.UTC(),
		Location:        in.Location,
		Host:            host,
		MaxParticipants: maxParticipants,
		Participants:    []string{},
		Categories:      categories,
	}
	if err := s.Meetups.Create(ctx, m); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return m, nil
}

// ListUpcoming returns meetups with date >= now, ascending by date. The
// result is cached in Redis for CacheTTL; cache failures are logged and
// ignored.
func (s *MeetupService) ListUpcoming(ctx context.Context, now time.Time) ([]entity.Meetup, error) {
	if s.Redis != nil && s.CacheTTL > 0 {
		var cached []entity.Meetup
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, upcomingCacheKey, &cached); err == nil && hit {
			return cached, nil
		} else if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("meetup listing cache read failed")
		}
	}

	meetups, err := s.Meetups.ListUpcoming(ctx, now)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil && s.CacheTTL > 0 {
		if err := helpers.RedisSetJSON(ctx, s.Redis, upcomingCacheKey, meetups, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("meetup listing cache write failed")
		}
	}
	return meetups, nil
}

// Get returns a meetup with its participants resolved to minimal projections.
func (s *MeetupService) Get(ctx context.Context, id string) (*entity.Meetup, []entity.Participant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, ErrInvalidID
	}
	m, err := s.Meetups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrMeetupNotFound
		}
		return nil, nil, err
	}
	participants := []entity.Participant{}
	if len(m.Participants) > 0 {
		participants, err = s.Users.Participants(ctx, m.Participants)
		if err != nil {
			return nil, nil, err
		}
	}
	return m, participants, nil
}

// Delete removes the meetup and pulls its id out of every user's cached
// membership set, so no orphaned back-references remain.
func (s *MeetupService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	if err := s.Meetups.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrMeetupNotFound
		}
		return err
	}
	if err := s.Users.RemoveMeetupFromAll(ctx, id); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("meetup_id", id).Error("membership cleanup after delete failed")
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *MeetupService) invalidateListing(ctx context.Context) {
	if s.Redis == nil || s.CacheTTL <= 0 {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, upcomingCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("meetup listing cache invalidation failed")
	}
}
