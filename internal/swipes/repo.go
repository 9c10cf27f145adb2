package swipes

import (
	"context"
	"fmt"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/storage/postgres"
)

// Repo is the Postgres swipe store. The version column carries the
// compare-and-set; seq records creation order.
type Repo struct {
	db postgres.DB
}

func NewRepo(db postgres.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, key domain.SwipeKey) (domain.Swipe, error) {
	const q = `
select person_decision, project_decision, version, created_at, updated_at
from swipes
where profile_id = $1 and project_id = $2;
`
	sw := domain.Swipe{SwipeKey: key}
	var person, project int16
	err := r.db.QueryRow(ctx, q, key.ProfileID, key.ProjectID).
		Scan(&person, &project, &sw.Version, &sw.CreatedAt, &sw.UpdatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return domain.Swipe{}, domain.ErrNotFound
		}
		return domain.Swipe{}, fmt.Errorf("get swipe: %w", err)
	}
	sw.PersonDecision = domain.Decision(person)
	sw.ProjectDecision = domain.Decision(project)
	return sw, nil
}

func (r *Repo) Insert(ctx context.Context, sw domain.Swipe) (domain.Swipe, error) {
	const q = `
insert into swipes (profile_id, project_id, person_decision, project_decision, version)
values ($1, $2, $3, $4, 1)
on conflict (profile_id, project_id) do nothing
returning version, created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q, sw.ProfileID, sw.ProjectID, int16(sw.PersonDecision), int16(sw.ProjectDecision)).
		Scan(&sw.Version, &sw.CreatedAt, &sw.UpdatedAt)
	switch {
	case err == nil:
		return sw, nil
	case postgres.IsNoRows(err):
		return domain.Swipe{}, domain.ErrConflict
	case postgres.IsForeignKeyViolation(err):
		return domain.Swipe{}, domain.ErrNotFound
	default:
		return domain.Swipe{}, fmt.Errorf("insert swipe: %w", err)
	}
}

func (r *Repo) UpdateIfVersion(ctx context.Context, sw domain.Swipe, version int64) (domain.Swipe, error) {
	const q = `
update swipes
set person_decision = $3, project_decision = $4, version = version + 1, updated_at = now()
where profile_id = $1 and project_id = $2 and version = $5
returning version, created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q, sw.ProfileID, sw.ProjectID, int16(sw.PersonDecision), int16(sw.ProjectDecision), version).
		Scan(&sw.Version, &sw.CreatedAt, &sw.UpdatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return domain.Swipe{}, domain.ErrConflict
		}
		return domain.Swipe{}, fmt.Errorf("update swipe: %w", err)
	}
	return sw, nil
}

// MatchedProjectIDs lists the projects profileID mutually liked, in swipe
// creation order.
func (r *Repo) MatchedProjectIDs(ctx context.Context, profileID int64) ([]int64, error) {
	const q = `
select project_id
from swipes
where profile_id = $1 and person_decision = $2 and project_decision = $2
order by seq;
`
	return r.ids(ctx, q, profileID, int16(domain.Like))
}

// MatchedProfileIDs lists the profiles with a mutual like on any of
// projectIDs. A profile matched on several projects appears once, at its
// earliest swipe.
func (r *Repo) MatchedProfileIDs(ctx context.Context, projectIDs []int64) ([]int64, error) {
	if len(projectIDs) == 0 {
		return []int64{}, nil
	}
	const q = `
select profile_id
from swipes
where project_id = any($1) and person_decision = $2 and project_decision = $2
group by profile_id
order by min(seq);
`
	return r.ids(ctx, q, projectIDs, int16(domain.Like))
}

func (r *Repo) ids(ctx context.Context, q string, args ...any) ([]int64, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	out := make([]int64, 0, 16)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
