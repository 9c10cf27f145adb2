package profiles

import (
	"context"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/tags"
)

type Store interface {
	Get(ctx context.Context, id int64) (*domain.Profile, error)
	Update(ctx context.Context, id int64, in domain.ProfileInput, skills, categories []domain.Tag) (*domain.Profile, error)
}

type Service struct {
	store Store
	tags  *tags.Set
}

func NewService(store Store, tagSet *tags.Set) *Service {
	return &Service{store: store, tags: tagSet}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	return s.store.Get(ctx, id)
}

// Update reconciles the skill and category names, then persists the
// profile with the resolved tags.
func (s *Service) Update(ctx context.Context, id int64, in domain.ProfileInput) (*domain.Profile, error) {
	skills, categories, err := s.tags.ReconcileAll(ctx, in.Skills, in.Categories)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, in, skills, categories)
}
