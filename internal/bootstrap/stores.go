package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	httpapi "github.com/tunakleague/collabin-backend/internal/api/http"
	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/memstore"
	"github.com/tunakleague/collabin-backend/internal/profiles"
	"github.com/tunakleague/collabin-backend/internal/projects"
	"github.com/tunakleague/collabin-backend/internal/ranking"
	"github.com/tunakleague/collabin-backend/internal/swipes"
	"github.com/tunakleague/collabin-backend/internal/tags"
)

type ProfileStore interface {
	profiles.Store
	Ensure(ctx context.Context, u domain.UpsertProfile) (int64, error)
	GetMany(ctx context.Context, ids []int64) ([]domain.Profile, error)
}

type ProjectStore interface {
	projects.Store
	GetMany(ctx context.Context, ids []int64) ([]domain.Project, error)
}

type SwipeStore interface {
	swipes.Store
	MatchedProjectIDs(ctx context.Context, profileID int64) ([]int64, error)
	MatchedProfileIDs(ctx context.Context, projectIDs []int64) ([]int64, error)
}

// Stores is the entity store behind the services, whichever driver backs it.
type Stores struct {
	Tags     tags.Store
	Profiles ProfileStore
	Projects ProjectStore
	Index    ranking.Index
	Swipes   SwipeStore
	Ping     httpapi.PingFunc
}

func MemoryStores() Stores {
	m := memstore.New()
	return Stores{
		Tags:     m.Tags(),
		Profiles: m.Profiles(),
		Projects: m.Projects(),
		Index:    m.Index(),
		Swipes:   m.Swipes(),
	}
}

func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Tags:     tags.NewRepo(pool),
		Profiles: profiles.NewRepo(pool),
		Projects: projects.NewRepo(pool),
		Index:    ranking.NewRepo(pool),
		Swipes:   swipes.NewRepo(pool),
		Ping:     pool.Ping,
	}
}

// compile-time checks that both drivers satisfy the same contracts
var (
	_ ProfileStore = (*memstore.ProfileStore)(nil)
	_ ProjectStore = (*memstore.ProjectStore)(nil)
	_ SwipeStore   = (*memstore.SwipeStore)(nil)
	_ ProfileStore = (*profiles.Repo)(nil)
	_ ProjectStore = (*projects.Repo)(nil)
	_ SwipeStore   = (*swipes.Repo)(nil)
)

