package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/tags"
)

type Store interface {
	Create(ctx context.Context, ownerID int64, in domain.ProjectInput, skills, categories []domain.Tag, createdOn time.Time) (*domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error)
	Update(ctx context.Context, id int64, in domain.ProjectInput, skills, categories []domain.Tag) (*domain.Project, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	store Store
	tags  *tags.Set
	now   func() time.Time
}

func NewService(store Store, tagSet *tags.Set) *Service {
	return &Service{store: store, tags: tagSet, now: time.Now}
}

// ErrBlankName is returned when a project is saved without a name.
var ErrBlankName = errors.New("project name required")

// Create reconciles the tag names and stores a project owned by ownerID,
// dated today.
func (s *Service) Create(ctx context.Context, ownerID int64, in domain.ProjectInput) (*domain.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrBlankName
	}

	skills, categories, err := s.tags.ReconcileAll(ctx, in.Skills, in.Categories)
	if err != nil {
		return nil, err
	}

	y, m, d := s.now().UTC().Date()
	return s.store.Create(ctx, ownerID, in, skills, categories, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Owned loads the project and checks that callerID owns it.
func (s *Service) Owned(ctx context.Context, callerID, id int64) (*domain.Project, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, domain.ErrNotOwner
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, callerID, id int64, in domain.ProjectInput) (*domain.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrBlankName
	}
	if _, err := s.Owned(ctx, callerID, id); err != nil {
		return nil, err
	}

	skills, categories, err := s.tags.ReconcileAll(ctx, in.Skills, in.Categories)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, in, skills, categories)
}

func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.Owned(ctx, callerID, id); err != nil {
		return err
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
