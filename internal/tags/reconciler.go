package tags

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/observability"
)

const MaxNameLength = 64

// Store is the tag side of the entity store. Create must report a
// duplicate name as domain.ErrConflict, and FindByName a missing one as
// domain.ErrNotFound.
type Store interface {
	FindByName(ctx context.Context, kind domain.TagKind, name string) (domain.Tag, error)
	Create(ctx context.Context, kind domain.TagKind, name string) (domain.Tag, error)
	List(ctx context.Context, kind domain.TagKind) ([]domain.Tag, error)
}

// Invalidator is told when a reconciler created a new tag.
type Invalidator interface {
	Invalidate(ctx context.Context, kind domain.TagKind) error
}

// Reconciler makes sure every referenced tag name of one kind exists.
type Reconciler struct {
	store       Store
	kind        domain.TagKind
	group       singleflight.Group
	metrics     *observability.Metrics
	invalidator Invalidator
}

func NewReconciler(store Store, kind domain.TagKind, metrics *observability.Metrics) *Reconciler {
	return &Reconciler{store: store, kind: kind, metrics: metrics}
}

// SetInvalidator registers a cache to drop whenever a tag gets created.
func (r *Reconciler) SetInvalidator(inv Invalidator) {
	r.invalidator = inv
}

func (r *Reconciler) Kind() domain.TagKind {
	return r.kind
}

// NormalizeName trims surrounding whitespace and validates the result.
// Case is preserved: "Go" and "go" are different tags.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: blank name", domain.ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("%w: %q is longer than %d characters", domain.ErrInvalidName, name, MaxNameLength)
	}
	return name, nil
}

// Reconcile resolves names to tags, creating the missing ones, and returns
// them de-duplicated in first-seen order. It stops at the first invalid
// name; tags created before that point are kept, so a retry is safe.
func (r *Reconciler) Reconcile(ctx context.Context, names []string) ([]domain.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]domain.Tag, 0, len(names))

	for _, raw := range names {
		name, err := NormalizeName(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := r.ensure(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}

// ensure shares one lookup per name across concurrent callers. The shared
// call runs detached from any single caller's cancellation; each caller
// stops waiting when its own context is done.
func (r *Reconciler) ensure(ctx context.Context, name string) (domain.Tag, error) {
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(name, func() (interface{}, error) {
		return r.getOrCreate(shared, name)
	})

	select {
	case <-ctx.Done():
		return domain.Tag{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Tag{}, res.Err
		}
		return res.Val.(domain.Tag), nil
	}
}

func (r *Reconciler) getOrCreate(ctx context.Context, name string) (domain.Tag, error) {
	tag, err := r.store.FindByName(ctx, r.kind, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Tag{}, fmt.Errorf("find %s %q: %w", r.kind, name, err)
	}

	tag, err = r.store.Create(ctx, r.kind, name)
	switch {
	case err == nil:
		r.metrics.ObserveTagCreated(r.kind)
		r.invalidate(ctx)
		return tag, nil
	case errors.Is(err, domain.ErrConflict):
		// lost the insert race; the winner's row is there now
		tag, err = r.store.FindByName(ctx, r.kind, name)
		if err != nil {
			return domain.Tag{}, fmt.Errorf("refetch %s %q: %w", r.kind, name, err)
		}
		return tag, nil
	default:
		return domain.Tag{}, fmt.Errorf("create %s %q: %w", r.kind, name, err)
	}
}

func (r *Reconciler) invalidate(ctx context.Context) {
	if r.invalidator == nil {
		return
	}
	if err := r.invalidator.Invalidate(ctx, r.kind); err != nil {
		observability.NewLogger(ctx).LogWarnf("tags.invalidate", "kind=%s error=%v", r.kind, err)
	}
}

// Set pairs the skill and category reconcilers used by every write that
// carries tag names.
type Set struct {
	Skills     *Reconciler
	Categories *Reconciler
}

func NewSet(store Store, metrics *observability.Metrics) *Set {
	return &Set{
		Skills:     NewReconciler(store, domain.SkillTag, metrics),
		Categories: NewReconciler(store, domain.CategoryTag, metrics),
	}
}

// SetInvalidator registers inv on both reconcilers.
func (s *Set) SetInvalidator(inv Invalidator) {
	s.Skills.SetInvalidator(inv)
	s.Categories.SetInvalidator(inv)
}

// ReconcileAll runs the skill reconciler, then the category reconciler.
func (s *Set) ReconcileAll(ctx context.Context, skills, categories []string) ([]domain.Tag, []domain.Tag, error) {
	skillTags, err := s.Skills.Reconcile(ctx, skills)
	if err != nil {
		return nil, nil, err
	}
	categoryTags, err := s.Categories.Reconcile(ctx, categories)
	if err != nil {
		return nil, nil, err
	}
	return skillTags, categoryTags, nil
}
