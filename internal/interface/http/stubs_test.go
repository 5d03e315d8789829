package handlers_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/meetup-api/internal/domain/entity"
	"github.com/oksasatya/meetup-api/internal/domain/repository"
)

// In-memory repositories backing the endpoint tests.

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*entity.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.JoinedMeetups = []string{}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	cp.JoinedMeetups = append([]string{}, u.JoinedMeetups...)
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) Participants(_ context.Context, ids []string) ([]entity.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Participant{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, entity.Participant{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return out, nil
}

func (r *stubUserRepo) AddJoinedMeetup(_ context.Context, userID, meetupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	for _, id := range u.JoinedMeetups {
		if id == meetupID {
			return nil
		}
	}
	u.JoinedMeetups = append(u.JoinedMeetups, meetupID)
	return nil
}

func (r *stubUserRepo) RemoveJoinedMeetup(_ context.Context, userID, meetupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.JoinedMeetups = removeString(u.JoinedMeetups, meetupID)
	}
	return nil
}

func (r *stubUserRepo) RemoveMeetupFromAll(_ context.Context, meetupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		u.JoinedMeetups = removeString(u.JoinedMeetups, meetupID)
	}
	return nil
}

type stubMeetupRepo struct {
	mu      sync.Mutex
	meetups map[string]*entity.Meetup
}

func newStubMeetupRepo() *stubMeetupRepo {
	return &stubMeetupRepo{meetups: map[string]*entity.Meetup{}}
}

func (r *stubMeetupRepo) Create(_ context.Context, m *entity.Meetup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.NewString()
	if m.Participants == nil {
		m.Participants = []string{}
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.meetups[m.ID] = cloneMeetup(m)
	return nil
}

func (r *stubMeetupRepo) GetByID(_ context.Context, id string) (*entity.Meetup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneMeetup(m), nil
}

func (r *stubMeetupRepo) ListUpcoming(_ context.Context, now time.Time) ([]entity.Meetup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Meetup{}
	for _, m := range r.meetups {
		if !m.Date.Before(now) {
			out = append(out, *cloneMeetup(m))
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Date.Before(out[i].Date) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubMeetupRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetups[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.meetups, id)
	return nil
}

func (r *stubMeetupRepo) AddParticipant(_ context.Context, meetupID, userID string) (*entity.Meetup, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetups[meetupID]
	if !ok {
		return nil, false, nil
	}
	if m.HasParticipant(userID) || len(m.Participants) >= m.MaxParticipants {
		return nil, false, nil
	}
	m.Participants = append(m.Participants, userID)
	m.UpdatedAt = time.Now()
	return cloneMeetup(m), true, nil
}

func (r *stubMeetupRepo) RemoveParticipant(_ context.Context, meetupID, userID string) (*entity.Meetup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetups[meetupID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m.Participants = removeString(m.Participants, userID)
	m.UpdatedAt = time.Now()
	return cloneMeetup(m), nil
}

func cloneMeetup(m *entity.Meetup) *entity.Meetup {
	cp := *m
	cp.Participants = append([]string{}, m.Participants...)
	cp.Categories = append([]string{}, m.Categories...)
	return &cp
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
