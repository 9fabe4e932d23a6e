package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desainin/desainin-backend/internal/auth/domain"
)

// UserRepo provides persistence operations for users.
type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user with the given bcrypt password hash.
func (r *UserRepo) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	const q = `
insert into "user" (id, name, email, image, credits, password_hash)
values ($1, $2, $3, nullif($4,''), $5, $6)
returning created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q, u.ID, u.Name, u.Email, u.Image, u.Credits, passwordHash).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		// unique violation on email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByEmail returns the user with that email and its password hash.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	const q = `
select id, name, email, coalesce(image,''), credits, password_hash, created_at, updated_at
from "user"
where email = $1;
`
	var u domain.User
	var hash string
	err := r.db.QueryRow(ctx, q, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.Credits, &hash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", err
	}
	return &u, hash, nil
}

// GetByID returns the user with that id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
select id, name, email, coalesce(image,''), credits, created_at, updated_at
from "user"
where id = $1;
`
	var u domain.User
	err := r.db.QueryRow(ctx, q, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.Credits, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
