package memstore

import (
	"context"
	"time"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

type ProjectStore struct {
	db *db
}

func (s *ProjectStore) Create(_ context.Context, ownerID int64, in domain.ProjectInput, skills, categories []domain.Tag, createdOn time.Time) (*domain.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.db.profileByID(ownerID) == nil {
		return nil, domain.ErrNotFound
	}
	p := &domain.Project{
		ID:        s.db.nextID(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Summary:   in.Summary,
		ImagePath: in.ImagePath,
		CreatedOn: createdOn,
	}
	s.db.projects = append(s.db.projects, p)
	s.db.setLinks(domain.ProjectSkills, p.ID, skills)
	s.db.setLinks(domain.ProjectCategories, p.ID, categories)

	out := s.hydrate(p)
	return &out, nil
}

func (s *ProjectStore) Get(_ context.Context, id int64) (*domain.Project, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p := s.db.projectByID(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := s.hydrate(p)
	return &out, nil
}

// GetMany returns the projects in the order of ids, skipping unknown ids.
func (s *ProjectStore) GetMany(_ context.Context, ids []int64) ([]domain.Project, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		if p := s.db.projectByID(id); p != nil {
			out = append(out, s.hydrate(p))
		}
	}
	return out, nil
}

// ListByOwner returns the owner's projects, oldest first.
func (s *ProjectStore) ListByOwner(_ context.Context, ownerID int64) ([]domain.Project, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []domain.Project{}
	for _, p := range s.db.projects {
		if p.OwnerID == ownerID {
			out = append(out, s.hydrate(p))
		}
	}
	return out, nil
}

func (s *ProjectStore) Update(_ context.Context, id int64, in domain.ProjectInput, skills, categories []domain.Tag) (*domain.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p := s.db.projectByID(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name = in.Name
	p.Summary = in.Summary
	p.ImagePath = in.ImagePath
	s.db.setLinks(domain.ProjectSkills, id, skills)
	s.db.setLinks(domain.ProjectCategories, id, categories)

	out := s.hydrate(p)
	return &out, nil
}

// Delete removes the project with its links and swipes.
func (s *ProjectStore) Delete(_ context.Context, id int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	idx := -1
	for i, p := range s.db.projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	s.db.projects = append(s.db.projects[:idx], s.db.projects[idx+1:]...)
	s.db.dropLinks(domain.ProjectSkills, id)
	s.db.dropLinks(domain.ProjectCategories, id)

	kept := s.db.swipes[:0]
	for _, sw := range s.db.swipes {
		if sw.ProjectID != id {
			kept = append(kept, sw)
		}
	}
	s.db.swipes = kept
	return true, nil
}

func (s *ProjectStore) hydrate(p *domain.Project) domain.Project {
	out := *p
	out.Skills = s.db.tagNames(domain.ProjectSkills, p.ID)
	out.Categories = s.db.tagNames(domain.ProjectCategories, p.ID)
	return out
}
