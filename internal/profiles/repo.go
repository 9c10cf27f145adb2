// Package profiles owns the person side of the entity store: the profile
// each caller is resolved to, and the skills and categories it carries.
package profiles

import (
	"context"
	"fmt"

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

func (r *Repo) Ensure(ctx context.Context, u domain.UpsertProfile) (int64, error) {
	if u.FirebaseUID == "" {
		return 0, fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into profiles (firebase_uid, display_name, updated_at)
values ($1, $2, now())
on conflict (firebase_uid) do update
set
  display_name = coalesce(nullif(excluded.display_name, ''), profiles.display_name),
  updated_at = now()
returning id;
`
	var id int64
	if err := r.db.QueryRow(ctx, q, u.FirebaseUID, u.DisplayName).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Tag names come back in link order.
const selectProfile = `
select p.id, p.display_name, p.summary, p.location, p.image_path,
  array(select s.name from profile_skills ps join skills s on s.id = ps.skill_id
        where ps.profile_id = p.id order by ps.id),
  array(select c.name from profile_categories pc join categories c on c.id = pc.category_id
        where pc.profile_id = p.id order by pc.id)
from profiles p
`

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.DisplayName, &p.Summary, &p.Location, &p.ImagePath, &p.Skills, &p.Categories)
	return p, err
}

func (r *Repo) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, selectProfile+`where p.id = $1;`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile %d: %w", id, err)
	}
	return &p, nil
}

// GetMany returns the profiles in the order of ids, skipping unknown ids.
func (r *Repo) GetMany(ctx context.Context, ids []int64) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}

	rows, err := r.db.Query(ctx, selectProfile+`where p.id = any($1);`, ids)
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]domain.Profile, len(ids))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Update rewrites the profile fields and both tag associations in one
// transaction.
func (r *Repo) Update(ctx context.Context, id int64, in domain.ProfileInput, skills, categories []domain.Tag) (*domain.Profile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
update profiles
set summary = $2, location = $3, image_path = $4, updated_at = now()
where id = $1;
`
	ct, err := tx.Exec(ctx, q, id, in.Summary, in.Location, in.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("update profile %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if err := postgres.ReplaceLinks(ctx, tx, "profile_skills", "profile_id", "skill_id", id, domain.TagIDs(skills)); err != nil {
		return nil, err
	}
	if err := postgres.ReplaceLinks(ctx, tx, "profile_categories", "profile_id", "category_id", id, domain.TagIDs(categories)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}
