// Package matches answers "who did I match with" from the swipe ledger.
// Results are derived on every read; nothing is cached.
package matches

import (
	"context"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

type SwipeIndex interface {
	MatchedProjectIDs(ctx context.Context, profileID int64) ([]int64, error)
	MatchedProfileIDs(ctx context.Context, projectIDs []int64) ([]int64, error)
}

type ProjectReader interface {
	GetMany(ctx context.Context, ids []int64) ([]domain.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error)
}

type ProfileReader interface {
	GetMany(ctx context.Context, ids []int64) ([]domain.Profile, error)
}

type Engine struct {
	swipes   SwipeIndex
	projects ProjectReader
	profiles ProfileReader
}

func NewEngine(swipes SwipeIndex, projects ProjectReader, profiles ProfileReader) *Engine {
	return &Engine{swipes: swipes, projects: projects, profiles: profiles}
}

// MatchedProjectsFor lists the projects that mutually liked profileID.
func (e *Engine) MatchedProjectsFor(ctx context.Context, profileID int64) ([]domain.Project, error) {
	ids, err := e.swipes.MatchedProjectIDs(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return e.projects.GetMany(ctx, ids)
}

// MatchedPeopleFor lists the people matched with any project ownerID owns.
// Someone matched on two of the owner's projects is listed once.
func (e *Engine) MatchedPeopleFor(ctx context.Context, ownerID int64) ([]domain.Profile, error) {
	owned, err := e.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return []domain.Profile{}, nil
	}

	projectIDs := make([]int64, 0, len(owned))
	for _, p := range owned {
		projectIDs = append(projectIDs, p.ID)
	}

	ids, err := e.swipes.MatchedProfileIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	return e.profiles.GetMany(ctx, ids)
}
