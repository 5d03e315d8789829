package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/meetup-api/internal/domain/entity"
	"github.com/oksasatya/meetup-api/internal/domain/repository"
)

const meetupColumns = `id, title, description, date, location, host,
	max_participants, participants, categories, created_at, updated_at`

type MeetupRepository struct {
	pool *pgxpool.Pool
}

func NewMeetupRepository(pool *pgxpool.Pool) *MeetupRepository {
	return &MeetupRepository{pool: pool}
}

func (r *MeetupRepository) Create(ctx context.Context, m *entity.Meetup) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO meetups (title, description, date, location, host, max_participants, categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, participants, created_at, updated_at
	`, m.Title, m.Description, m.Date, m.Location, m.Host, m.MaxParticipants, m.Categories)

	return row.Scan(&m.ID, &m.Participants, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MeetupRepository) GetByID(ctx context.Context, id string) (*entity.Meetup, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+meetupColumns+`
		FROM meetups
		WHERE id = $1::uuid
	`, id)

	m, err := scanMeetup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *MeetupRepository) ListUpcoming(ctx context.Context, now time.Time) ([]entity.Meetup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+meetupColumns+`
		FROM meetups
		WHERE date >= $1
		ORDER BY date ASC
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Meetup{}
	for rows.Next() {
		m, err := scanMeetup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MeetupRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM meetups WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddParticipant is the capacity-safe join: one conditional UPDATE whose
// WHERE clause holds the whole precondition. Postgres applies the row update
// atomically, so two concurrent joins on the last free slot serialize on the
// row and only one predicate evaluation sees a free slot.
func (r *MeetupRepository) AddParticipant(ctx context.Context, meetupID, userID string) (*entity.Meetup, bool, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE meetups
		SET participants = participants || $2::uuid,
		    updated_at = now()
		WHERE id = $1::uuid
		  AND NOT (participants @> ARRAY[$2::uuid])
		  AND cardinality(participants) < max_participants
		RETURNING `+meetupColumns+`
	`, meetupID, userID)

	m, err := scanMeetup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Predicate did not hold; the caller disambiguates.
			return nil, false, nil
		}
		return nil, false, err
	}
	return m, true, nil
}

func (r *MeetupRepository) RemoveParticipant(ctx context.Context, meetupID, userID string) (*entity.Meetup, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE meetups
		SET participants = array_remove(participants, $2::uuid),
		    updated_at = now()
		WHERE id = $1::uuid
		RETURNING `+meetupColumns+`
	`, meetupID, userID)

	m, err := scanMeetup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func scanMeetup(row pgx.Row) (*entity.Meetup, error) {
	m := &entity.Meetup{}
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Date, &m.Location, &m.Host,
		&m.MaxParticipants, &m.Participants, &m.Categories, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if m.Participants == nil {
		m.Participants = []string{}
	}
	if m.Categories == nil {
		m.Categories = []string{}
	}
	return m, nil
}

var _ repository.MeetupRepository = (*MeetupRepository)(nil)
