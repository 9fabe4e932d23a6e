package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desainin/desainin-backend/internal/auth/domain"
)

// SessionRepo provides persistence operations for login sessions.
type SessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	const q = `
insert into session (id, token, user_id, expires_at, ip_address, user_agent)
values ($1, $2, $3, $4, nullif($5,''), nullif($6,''))
returning created_at;
`
	return r.db.QueryRow(ctx, q, s.ID, s.Token, s.UserID, s.ExpiresAt, s.IPAddress, s.UserAgent).
		Scan(&s.CreatedAt)
}

// GetByToken returns the unexpired session carrying the given token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	const q = `
select id, token, user_id, expires_at, coalesce(ip_address,''), coalesce(user_agent,''), created_at
from session
where token = $1 and expires_at > now();
`
	var s domain.Session
	err := r.db.QueryRow(ctx, q, token).
		Scan(&s.ID, &s.Token, &s.UserID, &s.ExpiresAt, &s.IPAddress, &s.UserAgent, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByToken removes the session. Deleting an unknown token is not an error.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	const q = `delete from session where token = $1;`
	_, err := r.db.Exec(ctx, q, token)
	return err
}
