// Package swipes records like/pass decisions from both sides of a
// (profile, project) pair. A pair is a match when both sides like it.
package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/observability"
)

// MaxAttempts bounds the compare-and-set retries for one decision.
const MaxAttempts = 8

// Store persists swipes with optimistic concurrency. Insert fails with
// domain.ErrConflict when the pair already exists; UpdateIfVersion fails
// with domain.ErrConflict when the stored version moved on.
type Store interface {
	Get(ctx context.Context, key domain.SwipeKey) (domain.Swipe, error)
	Insert(ctx context.Context, sw domain.Swipe) (domain.Swipe, error)
	UpdateIfVersion(ctx context.Context, sw domain.Swipe, version int64) (domain.Swipe, error)
}

type ProjectLookup interface {
	Get(ctx context.Context, id int64) (*domain.Project, error)
}

type ProfileLookup interface {
	Get(ctx context.Context, id int64) (*domain.Profile, error)
}

// Publisher is told about every match that forms or gets revoked.
type Publisher interface {
	Publish(ctx context.Context, ev MatchEvent) error
}

type Ledger struct {
	store     Store
	projects  ProjectLookup
	profiles  ProfileLookup
	publisher Publisher
	metrics   *observability.Metrics
}

func NewLedger(store Store, projects ProjectLookup, profiles ProfileLookup, metrics *observability.Metrics) *Ledger {
	return &Ledger{store: store, projects: projects, profiles: profiles, metrics: metrics}
}

func (l *Ledger) SetPublisher(p Publisher) {
	l.publisher = p
}

// RecordPersonDecision stores the profile's opinion of the project.
func (l *Ledger) RecordPersonDecision(ctx context.Context, profileID, projectID int64, d domain.Decision) (domain.SwipeState, error) {
	return l.decide(ctx, domain.SwipeKey{ProfileID: profileID, ProjectID: projectID}, domain.PersonSide, d)
}

// RecordProjectDecision stores the project's opinion of the profile.
// Callers acting for a user go through RecordOwnerDecision.
func (l *Ledger) RecordProjectDecision(ctx context.Context, profileID, projectID int64, d domain.Decision) (domain.SwipeState, error) {
	return l.decide(ctx, domain.SwipeKey{ProfileID: profileID, ProjectID: projectID}, domain.ProjectSide, d)
}

// RecordOwnerDecision is RecordProjectDecision on behalf of callerID, who
// must own the project.
func (l *Ledger) RecordOwnerDecision(ctx context.Context, callerID, profileID, projectID int64, d domain.Decision) (domain.SwipeState, error) {
	if !d.Recordable() {
		return domain.SwipeState{}, fmt.Errorf("%w: %s", domain.ErrInvalidDecision, d)
	}
	p, err := l.projects.Get(ctx, projectID)
	if err != nil {
		return domain.SwipeState{}, err
	}
	if p.OwnerID != callerID {
		return domain.SwipeState{}, domain.ErrNotOwner
	}
	return l.RecordProjectDecision(ctx, profileID, projectID, d)
}

// State returns the stored decisions for the pair, or domain.ErrNotFound
// when neither side has swiped yet.
func (l *Ledger) State(ctx context.Context, key domain.SwipeKey) (domain.SwipeState, error) {
	sw, err := l.store.Get(ctx, key)
	if err != nil {
		return domain.SwipeState{}, err
	}
	return sw.State(), nil
}

func (l *Ledger) decide(ctx context.Context, key domain.SwipeKey, side domain.Side, d domain.Decision) (domain.SwipeState, error) {
	if !d.Recordable() {
		return domain.SwipeState{}, fmt.Errorf("%w: %s", domain.ErrInvalidDecision, d)
	}
	if _, err := l.profiles.Get(ctx, key.ProfileID); err != nil {
		return domain.SwipeState{}, err
	}
	if _, err := l.projects.Get(ctx, key.ProjectID); err != nil {
		return domain.SwipeState{}, err
	}
	return l.record(ctx, key, side, d)
}

// record applies one side's decision with read, modify, conditional write.
// Losing a race re-reads and tries again; the other side's decision is
// never overwritten.
func (l *Ledger) record(ctx context.Context, key domain.SwipeKey, side domain.Side, d domain.Decision) (domain.SwipeState, error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		cur, err := l.store.Get(ctx, key)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			stored, err := l.store.Insert(ctx, domain.Swipe{SwipeKey: key}.With(side, d))
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			if err != nil {
				return domain.SwipeState{}, err
			}
			l.written(ctx, side, d, false, stored)
			return stored.State(), nil

		case err != nil:
			return domain.SwipeState{}, err
		}

		if cur.Decision(side) == d {
			return cur.State(), nil
		}

		stored, err := l.store.UpdateIfVersion(ctx, cur.With(side, d), cur.Version)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			return domain.SwipeState{}, err
		}
		l.written(ctx, side, d, cur.IsMatch(), stored)
		return stored.State(), nil
	}

	return domain.SwipeState{}, fmt.Errorf("%w: swipe %d/%d changed %d times while writing", domain.ErrConflict, key.ProfileID, key.ProjectID, MaxAttempts)
}

func (l *Ledger) written(ctx context.Context, side domain.Side, d domain.Decision, wasMatch bool, stored domain.Swipe) {
	isMatch := stored.IsMatch()
	l.metrics.ObserveDecision(side, d, wasMatch, isMatch)

	if wasMatch == isMatch || l.publisher == nil {
		return
	}

	ev := MatchEvent{
		Type:      EventMatchFormed,
		ProfileID: stored.ProfileID,
		ProjectID: stored.ProjectID,
		By:        side.String(),
		At:        time.Now().UTC(),
	}
	if !isMatch {
		ev.Type = EventMatchRevoked
	}
	if err := l.publisher.Publish(ctx, ev); err != nil {
		observability.NewLogger(ctx).LogWarnf("swipes.publish", "%s for %d/%d: %v", ev.Type, ev.ProfileID, ev.ProjectID, err)
	}
}
