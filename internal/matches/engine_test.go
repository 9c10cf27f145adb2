package matches

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/memstore"
	"github.com/tunakleague/collabin-backend/internal/swipes"
)

type fixture struct {
	store  *memstore.Store
	ledger *swipes.Ledger
	engine *Engine
}

func newFixture() *fixture {
	store := memstore.New()
	return &fixture{
		store:  store,
		ledger: swipes.NewLedger(store.Swipes(), store.Projects(), store.Profiles(), nil),
		engine: NewEngine(store.Swipes(), store.Projects(), store.Profiles()),
	}
}

func (f *fixture) profile(t *testing.T, uid string) int64 {
	t.Helper()
	id, err := f.store.Profiles().Ensure(context.Background(), domain.UpsertProfile{FirebaseUID: uid, DisplayName: uid})
	require.NoError(t, err)
	return id
}

func (f *fixture) project(t *testing.T, owner int64, name string) int64 {
	t.Helper()
	p, err := f.store.Projects().Create(context.Background(), owner, domain.ProjectInput{Name: name}, nil, nil, time.Now())
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) swipe(t *testing.T, person, project int64, personD, projectD domain.Decision) {
	t.Helper()
	ctx := context.Background()
	if personD != domain.Undecided {
		_, err := f.ledger.RecordPersonDecision(ctx, person, project, personD)
		require.NoError(t, err)
	}
	if projectD != domain.Undecided {
		_, err := f.ledger.RecordProjectDecision(ctx, person, project, projectD)
		require.NoError(t, err)
	}
}

func TestMatchedProjectsFor(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.profile(t, "owner")
	me := f.profile(t, "me")
	p1 := f.project(t, owner, "p1")
	p2 := f.project(t, owner, "p2")
	p3 := f.project(t, owner, "p3")

	f.swipe(t, me, p2, domain.Like, domain.Like)
	f.swipe(t, me, p1, domain.Like, domain.Pass)
	f.swipe(t, me, p3, domain.Like, domain.Like)

	projects, err := f.engine.MatchedProjectsFor(ctx, me)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, p2, projects[0].ID)
	assert.Equal(t, p3, projects[1].ID)
}

func TestMatchedPeopleFor_DeduplicatesAcrossProjects(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.profile(t, "owner")
	a := f.profile(t, "a")
	b := f.profile(t, "b")
	c := f.profile(t, "c")
	p1 := f.project(t, owner, "p1")
	p2 := f.project(t, owner, "p2")

	f.swipe(t, b, p1, domain.Like, domain.Like)
	f.swipe(t, a, p2, domain.Like, domain.Like)
	f.swipe(t, b, p2, domain.Like, domain.Like)
	f.swipe(t, c, p1, domain.Pass, domain.Like)

	people, err := f.engine.MatchedPeopleFor(ctx, owner)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, b, people[0].ID)
	assert.Equal(t, a, people[1].ID)

	none, err := f.engine.MatchedPeopleFor(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMatches_RevocationIsVisibleOnNextRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.profile(t, "owner")
	me := f.profile(t, "me")
	p := f.project(t, owner, "p")

	f.swipe(t, me, p, domain.Like, domain.Like)
	projects, err := f.engine.MatchedProjectsFor(ctx, me)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	f.swipe(t, me, p, domain.Pass, domain.Undecided)

	projects, err = f.engine.MatchedProjectsFor(ctx, me)
	require.NoError(t, err)
	assert.Empty(t, projects)
	people, err := f.engine.MatchedPeopleFor(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, people)

	// either side can bring it back
	f.swipe(t, me, p, domain.Like, domain.Undecided)
	people, err = f.engine.MatchedPeopleFor(ctx, owner)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, me, people[0].ID)
}
