// Package memstore is an in-memory entity store. It backs
// STORAGE_DRIVER=memory and the service tests, and mirrors the constraints
// the Postgres schema enforces: unique tag names, one swipe per pair,
// cascading deletes and serial ids that define natural order.
package memstore

import (
	"sync"
	"time"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

type linkRow struct {
	id      int64
	ownerID int64
	tagID   int64
}

type db struct {
	mu sync.RWMutex

	seq int64

	profiles []*domain.Profile
	projects []*domain.Project
	tags     map[domain.TagKind][]domain.Tag
	links    map[domain.Association][]linkRow
	swipes   []*domain.Swipe

	now func() time.Time
}

// Store hands out the per-entity views over one shared dataset.
type Store struct {
	db *db
}

func New() *Store {
	return &Store{db: &db{
		tags:  make(map[domain.TagKind][]domain.Tag),
		links: make(map[domain.Association][]linkRow),
		now:   time.Now,
	}}
}

func (s *Store) Tags() *TagStore         { return &TagStore{db: s.db} }
func (s *Store) Profiles() *ProfileStore { return &ProfileStore{db: s.db} }
func (s *Store) Projects() *ProjectStore { return &ProjectStore{db: s.db} }
func (s *Store) Index() *IndexStore      { return &IndexStore{db: s.db} }
func (s *Store) Swipes() *SwipeStore     { return &SwipeStore{db: s.db} }

func (d *db) nextID() int64 {
	d.seq++
	return d.seq
}

func (d *db) profileByID(id int64) *domain.Profile {
	for _, p := range d.profiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (d *db) projectByID(id int64) *domain.Project {
	for _, p := range d.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (d *db) tagName(kind domain.TagKind, id int64) string {
	for _, t := range d.tags[kind] {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}

// tagNames returns the names linked to ownerID through assoc, in link order.
func (d *db) tagNames(assoc domain.Association, ownerID int64) []string {
	names := []string{}
	for _, l := range d.links[assoc] {
		if l.ownerID == ownerID {
			names = append(names, d.tagName(assoc.TagKind(), l.tagID))
		}
	}
	return names
}

// setLinks replaces ownerID's links for assoc, ignoring duplicate tags.
func (d *db) setLinks(assoc domain.Association, ownerID int64, tags []domain.Tag) {
	d.dropLinks(assoc, ownerID)
	seen := make(map[int64]struct{}, len(tags))
	for _, t := range tags {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		d.links[assoc] = append(d.links[assoc], linkRow{id: d.nextID(), ownerID: ownerID, tagID: t.ID})
	}
}

func (d *db) dropLinks(assoc domain.Association, ownerID int64) {
	kept := d.links[assoc][:0]
	for _, l := range d.links[assoc] {
		if l.ownerID != ownerID {
			kept = append(kept, l)
		}
	}
	d.links[assoc] = kept
}
