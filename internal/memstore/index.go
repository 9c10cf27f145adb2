package memstore

import (
	"context"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

// IndexStore answers the association lookups the rankers run.
type IndexStore struct {
	db *db
}

// TagIDs returns the tag ids linked to ownerID, in link order.
func (s *IndexStore) TagIDs(_ context.Context, assoc domain.Association, ownerID int64) ([]int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []int64{}
	for _, l := range s.db.links[assoc] {
		if l.ownerID == ownerID {
			out = append(out, l.tagID)
		}
	}
	return out, nil
}

// Links returns every association row whose tag is in tagIDs, in row order.
func (s *IndexStore) Links(_ context.Context, assoc domain.Association, tagIDs []int64) ([]domain.TagLink, error) {
	want := make(map[int64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		want[id] = struct{}{}
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []domain.TagLink{}
	for _, l := range s.db.links[assoc] {
		if _, ok := want[l.tagID]; ok {
			out = append(out, domain.TagLink{OwnerID: l.ownerID, TagID: l.tagID})
		}
	}
	return out, nil
}

// ProfileIDs returns every profile id in creation order.
func (s *IndexStore) ProfileIDs(_ context.Context) ([]int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]int64, 0, len(s.db.profiles))
	for _, p := range s.db.profiles {
		out = append(out, p.ID)
	}
	return out, nil
}

// ProjectIDs returns every project id in creation order.
func (s *IndexStore) ProjectIDs(_ context.Context) ([]int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]int64, 0, len(s.db.projects))
	for _, p := range s.db.projects {
		out = append(out, p.ID)
	}
	return out, nil
}
