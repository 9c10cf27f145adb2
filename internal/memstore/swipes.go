package memstore

import (
	"context"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

type SwipeStore struct {
	db *db
}

func (s *SwipeStore) Get(_ context.Context, key domain.SwipeKey) (domain.Swipe, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if sw := s.find(key); sw != nil {
		return *sw, nil
	}
	return domain.Swipe{}, domain.ErrNotFound
}

// Insert stores a new swipe at version 1. An existing record for the pair
// means another writer got there first: domain.ErrConflict.
func (s *SwipeStore) Insert(_ context.Context, sw domain.Swipe) (domain.Swipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.db.profileByID(sw.ProfileID) == nil || s.db.projectByID(sw.ProjectID) == nil {
		return domain.Swipe{}, domain.ErrNotFound
	}
	if s.find(sw.SwipeKey) != nil {
		return domain.Swipe{}, domain.ErrConflict
	}
	now := s.db.now()
	sw.Version = 1
	sw.CreatedAt = now
	sw.UpdatedAt = now
	stored := sw
	s.db.swipes = append(s.db.swipes, &stored)
	return sw, nil
}

// UpdateIfVersion writes both decisions when the stored version still
// equals version, bumping it. A mismatch returns domain.ErrConflict.
func (s *SwipeStore) UpdateIfVersion(_ context.Context, sw domain.Swipe, version int64) (domain.Swipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cur := s.find(sw.SwipeKey)
	if cur == nil {
		return domain.Swipe{}, domain.ErrNotFound
	}
	if cur.Version != version {
		return domain.Swipe{}, domain.ErrConflict
	}
	cur.PersonDecision = sw.PersonDecision
	cur.ProjectDecision = sw.ProjectDecision
	cur.Version++
	cur.UpdatedAt = s.db.now()
	return *cur, nil
}

// MatchedProjectIDs lists projects the profile mutually liked, in swipe
// creation order.
func (s *SwipeStore) MatchedProjectIDs(_ context.Context, profileID int64) ([]int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []int64{}
	for _, sw := range s.db.swipes {
		if sw.ProfileID == profileID && sw.IsMatch() {
			out = append(out, sw.ProjectID)
		}
	}
	return out, nil
}

// MatchedProfileIDs lists profiles with a mutual like on any of
// projectIDs, in swipe creation order; a profile appears once.
func (s *SwipeStore) MatchedProfileIDs(_ context.Context, projectIDs []int64) ([]int64, error) {
	want := make(map[int64]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		want[id] = struct{}{}
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	seen := make(map[int64]struct{})
	out := []int64{}
	for _, sw := range s.db.swipes {
		if _, ok := want[sw.ProjectID]; !ok || !sw.IsMatch() {
			continue
		}
		if _, dup := seen[sw.ProfileID]; dup {
			continue
		}
		seen[sw.ProfileID] = struct{}{}
		out = append(out, sw.ProfileID)
	}
	return out, nil
}

func (s *SwipeStore) find(key domain.SwipeKey) *domain.Swipe {
	for _, sw := range s.db.swipes {
		if sw.SwipeKey == key {
			return sw
		}
	}
	return nil
}
