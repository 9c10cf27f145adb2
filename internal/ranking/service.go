package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/observability"
)

// Index is the association side of the entity store.
type Index interface {
	// TagIDs returns the tags linked to ownerID through assoc.
	TagIDs(ctx context.Context, assoc domain.Association, ownerID int64) ([]int64, error)
	// Links returns the rows of assoc pointing at any of tagIDs, in row order.
	Links(ctx context.Context, assoc domain.Association, tagIDs []int64) ([]domain.TagLink, error)
	ProfileIDs(ctx context.Context) ([]int64, error)
	ProjectIDs(ctx context.Context) ([]int64, error)
}

// GetMany implementations return entities in the order of ids.
type ProfileReader interface {
	Get(ctx context.Context, id int64) (*domain.Profile, error)
	GetMany(ctx context.Context, ids []int64) ([]domain.Profile, error)
}

type ProjectReader interface {
	Get(ctx context.Context, id int64) (*domain.Project, error)
	GetMany(ctx context.Context, ids []int64) ([]domain.Project, error)
}

// Service specializes Rank for people-for-a-project (skills) and
// projects-for-a-person (categories).
type Service struct {
	index    Index
	profiles ProfileReader
	projects ProjectReader
	metrics  *observability.Metrics
}

func NewService(index Index, profiles ProfileReader, projects ProjectReader, metrics *observability.Metrics) *Service {
	return &Service{index: index, profiles: profiles, projects: projects, metrics: metrics}
}

// PeopleForProject ranks every profile by how many of the project's
// required skills it offers. A project without skills yields all profiles.
func (s *Service) PeopleForProject(ctx context.Context, projectID int64) ([]domain.Profile, error) {
	defer s.metrics.ObserveRanking("people", time.Now())

	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	ids, err := s.rank(ctx, domain.ProjectSkills, projectID, domain.ProfileSkills, s.index.ProfileIDs)
	if err != nil {
		return nil, err
	}
	return s.profiles.GetMany(ctx, ids)
}

// ProjectsForProfile ranks every project by how many of the profile's
// preferred categories it is tagged with. A profile without preferences
// yields all projects.
func (s *Service) ProjectsForProfile(ctx context.Context, profileID int64) ([]domain.Project, error) {
	defer s.metrics.ObserveRanking("projects", time.Now())

	if _, err := s.profiles.Get(ctx, profileID); err != nil {
		return nil, err
	}

	ids, err := s.rank(ctx, domain.ProfileCategories, profileID, domain.ProjectCategories, s.index.ProjectIDs)
	if err != nil {
		return nil, err
	}
	return s.projects.GetMany(ctx, ids)
}

func (s *Service) rank(
	ctx context.Context,
	targetAssoc domain.Association,
	targetID int64,
	candidateAssoc domain.Association,
	pool func(context.Context) ([]int64, error),
) ([]int64, error) {
	target, err := s.index.TagIDs(ctx, targetAssoc, targetID)
	if err != nil {
		return nil, fmt.Errorf("load target tags: %w", err)
	}

	if len(target) == 0 {
		ids, err := pool(ctx)
		if err != nil {
			return nil, fmt.Errorf("load candidate pool: %w", err)
		}
		return ids, nil
	}

	links, err := s.index.Links(ctx, candidateAssoc, target)
	if err != nil {
		return nil, fmt.Errorf("load candidate tags: %w", err)
	}
	return IDs(Rank(target, CandidatesFromLinks(links))), nil
}
