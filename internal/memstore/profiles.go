package memstore

import (
	"context"
	"fmt"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

type ProfileStore struct {
	db *db
}

// Ensure returns the profile id for the firebase uid, creating the profile
// on first sight. A non-empty display name overwrites the stored one.
func (s *ProfileStore) Ensure(_ context.Context, u domain.UpsertProfile) (int64, error) {
	if u.FirebaseUID == "" {
		return 0, fmt.Errorf("firebase_uid required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, p := range s.db.profiles {
		if p.FirebaseUID == u.FirebaseUID {
			if u.DisplayName != "" {
				p.DisplayName = u.DisplayName
			}
			return p.ID, nil
		}
	}
	p := &domain.Profile{ID: s.db.nextID(), FirebaseUID: u.FirebaseUID, DisplayName: u.DisplayName}
	s.db.profiles = append(s.db.profiles, p)
	return p.ID, nil
}

func (s *ProfileStore) Get(_ context.Context, id int64) (*domain.Profile, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p := s.db.profileByID(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := s.hydrate(p)
	return &out, nil
}

// GetMany returns the profiles in the order of ids, skipping unknown ids.
func (s *ProfileStore) GetMany(_ context.Context, ids []int64) ([]domain.Profile, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		if p := s.db.profileByID(id); p != nil {
			out = append(out, s.hydrate(p))
		}
	}
	return out, nil
}

func (s *ProfileStore) Update(_ context.Context, id int64, in domain.ProfileInput, skills, categories []domain.Tag) (*domain.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p := s.db.profileByID(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Summary = in.Summary
	p.Location = in.Location
	p.ImagePath = in.ImagePath
	s.db.setLinks(domain.ProfileSkills, id, skills)
	s.db.setLinks(domain.ProfileCategories, id, categories)

	out := s.hydrate(p)
	return &out, nil
}

// hydrate copies p and fills its tag names; the caller holds the lock.
func (s *ProfileStore) hydrate(p *domain.Profile) domain.Profile {
	out := *p
	out.Skills = s.db.tagNames(domain.ProfileSkills, p.ID)
	out.Categories = s.db.tagNames(domain.ProfileCategories, p.ID)
	return out
}
