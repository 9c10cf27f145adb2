package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

type TagStore struct {
	db *db
}

func (s *TagStore) FindByName(_ context.Context, kind domain.TagKind, name string) (domain.Tag, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, t := range s.db.tags[kind] {
		if t.Name == name {
			return t, nil
		}
	}
	return domain.Tag{}, domain.ErrNotFound
}

func (s *TagStore) Create(_ context.Context, kind domain.TagKind, name string) (domain.Tag, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, t := range s.db.tags[kind] {
		if t.Name == name {
			return domain.Tag{}, domain.ErrConflict
		}
	}
	t := domain.Tag{ID: s.db.nextID(), Kind: kind, Name: name}
	s.db.tags[kind] = append(s.db.tags[kind], t)
	return t, nil
}

func (s *TagStore) List(_ context.Context, kind domain.TagKind) ([]domain.Tag, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := append([]domain.Tag(nil), s.db.tags[kind]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MustTags creates (or finds) each name and returns the tags, for fixtures.
func (s *TagStore) MustTags(kind domain.TagKind, names ...string) []domain.Tag {
	out := make([]domain.Tag, 0, len(names))
	for _, n := range names {
		t, err := s.FindByName(context.Background(), kind, n)
		if err != nil {
			t, err = s.Create(context.Background(), kind, n)
		}
		if err != nil {
			panic(fmt.Sprintf("memstore: tag %q: %v", n, err))
		}
		out = append(out, t)
	}
	return out
}
