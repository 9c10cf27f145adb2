package ranking

import (
	"context"
	"fmt"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/storage/postgres"
)

// Repo runs the association lookups against the four link tables. Rows
// carry a serial id; ordering by it gives the store's discovery order.
type Repo struct {
	db postgres.DB
}

func NewRepo(db postgres.DB) *Repo {
	return &Repo{db: db}
}

type assocColumns struct {
	table string
	owner string
	tag   string
}

func columns(a domain.Association) (assocColumns, error) {
	switch a {
	case domain.ProfileSkills:
		return assocColumns{"profile_skills", "profile_id", "skill_id"}, nil
	case domain.ProfileCategories:
		return assocColumns{"profile_categories", "profile_id", "category_id"}, nil
	case domain.ProjectSkills:
		return assocColumns{"project_skills", "project_id", "skill_id"}, nil
	case domain.ProjectCategories:
		return assocColumns{"project_categories", "project_id", "category_id"}, nil
	default:
		return assocColumns{}, fmt.Errorf("unknown association %d", a)
	}
}

func (r *Repo) TagIDs(ctx context.Context, assoc domain.Association, ownerID int64) ([]int64, error) {
	cols, err := columns(assoc)
	if err != nil {
		return nil, err
	}
	q := `select ` + cols.tag + ` from ` + cols.table + ` where ` + cols.owner + ` = $1 order by id;`
	return r.ids(ctx, q, ownerID)
}

func (r *Repo) Links(ctx context.Context, assoc domain.Association, tagIDs []int64) ([]domain.TagLink, error) {
	cols, err := columns(assoc)
	if err != nil {
		return nil, err
	}
	q := `select ` + cols.owner + `, ` + cols.tag + ` from ` + cols.table + ` where ` + cols.tag + ` = any($1) order by id;`

	rows, err := r.db.Query(ctx, q, tagIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TagLink, 0, 64)
	for rows.Next() {
		var l domain.TagLink
		if err := rows.Scan(&l.OwnerID, &l.TagID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) ProfileIDs(ctx context.Context) ([]int64, error) {
	return r.ids(ctx, `select id from profiles order by id;`)
}

func (r *Repo) ProjectIDs(ctx context.Context) ([]int64, error) {
	return r.ids(ctx, `select id from projects order by id;`)
}

func (r *Repo) ids(ctx context.Context, q string, args ...any) ([]int64, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int64, 0, 64)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
