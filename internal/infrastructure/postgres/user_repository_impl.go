package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/meetup-api/internal/domain/entity"
	"github.com/oksasatya/meetup-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	if u.JoinedMeetups == nil {
		u.JoinedMeetups = []string{}
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.get(ctx, `
		SELECT id, email, password_hash, name, joined_meetups, created_at, updated_at
		FROM users
		WHERE id = $1::uuid
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.get(ctx, `
		SELECT id, email, password_hash, name, joined_meetups, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.JoinedMeetups,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Participants(ctx context.Context, ids []string) ([]entity.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email
		FROM users
		WHERE id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Participant, 0, len(ids))
	for rows.Next() {
		var p entity.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AddJoinedMeetup appends meetupID to the user's cached membership set.
// The predicate keeps the append idempotent.
func (r *UserRepository) AddJoinedMeetup(ctx context.Context, userID, meetupID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET joined_meetups = joined_meetups || $2::uuid,
		    updated_at = now()
		WHERE id = $1::uuid
		  AND NOT (joined_meetups @> ARRAY[$2::uuid])
	`, userID, meetupID)
	return err
}

func (r *UserRepository) RemoveJoinedMeetup(ctx context.Context, userID, meetupID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET joined_meetups = array_remove(joined_meetups, $2::uuid),
		    updated_at = now()
		WHERE id = $1::uuid
	`, userID, meetupID)
	return err
}

func (r *UserRepository) RemoveMeetupFromAll(ctx context.Context, meetupID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET joined_meetups = array_remove(joined_meetups, $1::uuid),
		    updated_at = now()
		WHERE joined_meetups @> ARRAY[$1::uuid]
	`, meetupID)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
