// Package projects owns the project side of the entity store and the
// owner-only operations on it.
package projects

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/storage/postgres"
)

type Repo struct {
	db postgres.DB
}

func NewRepo(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const selectProject = `
select p.id, p.owner_id, p.name, p.summary, p.image_path, p.created_on,
  array(select s.name from project_skills ps join skills s on s.id = ps.skill_id
        where ps.project_id = p.id order by ps.id),
  array(select c.name from project_categories pc join categories c on c.id = pc.category_id
        where pc.project_id = p.id order by pc.id)
from projects p
`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Summary, &p.ImagePath, &p.CreatedOn, &p.Skills, &p.Categories)
	return p, err
}

func (r *Repo) Create(ctx context.Context, ownerID int64, in domain.ProjectInput, skills, categories []domain.Tag, createdOn time.Time) (*domain.Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
insert into projects (owner_id, name, summary, image_path, created_on)
values ($1, $2, $3, $4, $5)
returning id;
`
	var id int64
	if err := tx.QueryRow(ctx, q, ownerID, in.Name, in.Summary, in.ImagePath, createdOn).Scan(&id); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}

	if err := r.replaceTags(ctx, tx, id, skills, categories); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *Repo) Get(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, selectProject+`where p.id = $1;`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return &p, nil
}

// GetMany returns the projects in the order of ids, skipping unknown ids.
func (r *Repo) GetMany(ctx context.Context, ids []int64) ([]domain.Project, error) {
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}

	byID := make(map[int64]domain.Project, len(ids))
	err := r.each(ctx, selectProject+`where p.id = any($1);`, func(p domain.Project) {
		byID[p.ID] = p
	}, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Repo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	out := make([]domain.Project, 0, 16)
	err := r.each(ctx, selectProject+`where p.owner_id = $1 order by p.id;`, func(p domain.Project) {
		out = append(out, p)
	}, ownerID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, id int64, in domain.ProjectInput, skills, categories []domain.Tag) (*domain.Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
update projects
set name = $2, summary = $3, image_path = $4
where id = $1;
`
	ct, err := tx.Exec(ctx, q, id, in.Name, in.Summary, in.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if err := r.replaceTags(ctx, tx, id, skills, categories); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete removes the project; its tag links and swipes go with it through
// the foreign keys.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from projects where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) replaceTags(ctx context.Context, tx pgx.Tx, id int64, skills, categories []domain.Tag) error {
	if err := postgres.ReplaceLinks(ctx, tx, "project_skills", "project_id", "skill_id", id, domain.TagIDs(skills)); err != nil {
		return err
	}
	return postgres.ReplaceLinks(ctx, tx, "project_categories", "project_id", "category_id", id, domain.TagIDs(categories))
}

func (r *Repo) each(ctx context.Context, q string, fn func(domain.Project), args ...any) error {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return err
		}
		fn(p)
	}
	return rows.Err()
}
