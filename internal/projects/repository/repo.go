package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desainin/desainin-backend/internal/projects/domain"
)

// Repo provides persistence operations for projects.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Insert stores a new project row. The id, title, prompt and type are set
// by the service; created_at comes back from the store.
func (r *Repo) Insert(ctx context.Context, p *domain.Project) error {
	const q = `
insert into project (id, user_id, title, prompt, type)
values ($1, $2, $3, $4, $5)
returning created_at;
`
	return r.db.QueryRow(ctx, q, p.ID, p.UserID, p.Title, p.Prompt, p.Type).
		Scan(&p.CreatedAt)
}

// GetByID fetches a project by primary key.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
select id, user_id, title, prompt, type, created_at
from project
where id = $1;
`
	var p domain.Project
	err := r.db.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Prompt, &p.Type, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateTitle sets the title of the given project and returns the title as
// stored. Zero rows affected maps to domain.ErrNotFound.
func (r *Repo) UpdateTitle(ctx context.Context, id, title string) (string, error) {
	const q = `
update project
set title = $2
where id = $1
returning title;
`
	var stored string
	err := r.db.QueryRow(ctx, q, id, title).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return stored, nil
}

// ListByUser returns the user's projects, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	const q = `
select id, user_id, title, prompt, type, created_at
from project
where user_id = $1
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Prompt, &p.Type, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
