package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desainin/desainin-backend/internal/generations/domain"
)

// Repo provides persistence operations for generations.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Insert stores a new generation with the next version for its project.
func (r *Repo) Insert(ctx context.Context, g *domain.Generation) error {
	const q = `
insert into generation (id, project_id, html_code, version)
values (
  $1, $2, $3,
  (select coalesce(max(version), 0) + 1 from generation where project_id = $2)
)
returning version, created_at;
`
	return r.db.QueryRow(ctx, q, g.ID, g.ProjectID, g.HTMLCode).
		Scan(&g.Version, &g.CreatedAt)
}

// ListByProject returns a project's generations, newest version first.
func (r *Repo) ListByProject(ctx context.Context, projectID string) ([]domain.Generation, error) {
	const q = `
select id, project_id, html_code, version, created_at
from generation
where project_id = $1
order by version desc;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Generation, 0, 4)
	for rows.Next() {
		var g domain.Generation
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.HTMLCode, &g.Version, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
