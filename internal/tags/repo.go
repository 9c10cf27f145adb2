package tags

import (
	"context"
	"fmt"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/storage/postgres"
)

// Repo stores skills and categories in two tables with a unique name index each.
type Repo struct {
	db postgres.DB
}

func NewRepo(db postgres.DB) *Repo {
	return &Repo{db: db}
}

func table(kind domain.TagKind) (string, error) {
	switch kind {
	case domain.SkillTag:
		return "skills", nil
	case domain.CategoryTag:
		return "categories", nil
	default:
		return "", fmt.Errorf("unknown tag kind %d", kind)
	}
}

func (r *Repo) FindByName(ctx context.Context, kind domain.TagKind, name string) (domain.Tag, error) {
	tbl, err := table(kind)
	if err != nil {
		return domain.Tag{}, err
	}

	q := `select id, name from ` + tbl + ` where name = $1;`
	t := domain.Tag{Kind: kind}
	if err := r.db.QueryRow(ctx, q, name).Scan(&t.ID, &t.Name); err != nil {
		if postgres.IsNoRows(err) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}
	return t, nil
}

func (r *Repo) Create(ctx context.Context, kind domain.TagKind, name string) (domain.Tag, error) {
	tbl, err := table(kind)
	if err != nil {
		return domain.Tag{}, err
	}

	q := `insert into ` + tbl + ` (name) values ($1) returning id, name;`
	t := domain.Tag{Kind: kind}
	if err := r.db.QueryRow(ctx, q, name).Scan(&t.ID, &t.Name); err != nil {
		// unique violation on name → caller refetches
		if postgres.IsUniqueViolation(err) {
			return domain.Tag{}, domain.ErrConflict
		}
		return domain.Tag{}, err
	}
	return t, nil
}

func (r *Repo) List(ctx context.Context, kind domain.TagKind) ([]domain.Tag, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `select id, name from `+tbl+` order by name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Tag, 0, 64)
	for rows.Next() {
		t := domain.Tag{Kind: kind}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
