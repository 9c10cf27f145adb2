package tags

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/memstore"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestCatalog_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	store := memstore.New().Tags()
	store.MustTags(domain.SkillTag, "SQL", "Go")

	catalog := NewCatalog(client, store, time.Minute)

	names, err := catalog.Names(ctx, domain.SkillTag)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, names)

	cached, err := mr.Get("collab:catalog:skill")
	require.NoError(t, err)
	assert.JSONEq(t, `["Go","SQL"]`, cached)
	assert.Equal(t, time.Minute, mr.TTL("collab:catalog:skill"))

	// served from cache until invalidated
	store.MustTags(domain.SkillTag, "Rust")
	names, err = catalog.Names(ctx, domain.SkillTag)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, names)

	require.NoError(t, catalog.Invalidate(ctx, domain.SkillTag))
	names, err = catalog.Names(ctx, domain.SkillTag)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust", "SQL"}, names)
}

func TestCatalog_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	store := memstore.New().Tags()
	store.MustTags(domain.CategoryTag, "web")

	catalog := NewCatalog(nil, store, time.Minute)

	names, err := catalog.Names(ctx, domain.CategoryTag)
	require.NoError(t, err)
	assert.Equal(t, []string{"web"}, names)
	assert.NoError(t, catalog.Invalidate(ctx, domain.CategoryTag))
	n, err := catalog.Refresh(ctx, domain.CategoryTag)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCatalog_ReconcilerInvalidates(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	store := memstore.New().Tags()
	catalog := NewCatalog(client, store, time.Minute)

	_, err := catalog.Names(ctx, domain.SkillTag)
	require.NoError(t, err)
	require.True(t, mr.Exists("collab:catalog:skill"))

	r := NewReconciler(store, domain.SkillTag, nil)
	r.SetInvalidator(catalog)
	_, err = r.Reconcile(ctx, []string{"Go"})
	require.NoError(t, err)

	assert.False(t, mr.Exists("collab:catalog:skill"))
}

// invalidatingStore simulates a reconciler creating a tag and dropping the
// cache while a catalog read is still loading the old list.
type invalidatingStore struct {
	*memstore.TagStore
	catalog *Catalog
	done    bool
}

func (s *invalidatingStore) List(ctx context.Context, kind domain.TagKind) ([]domain.Tag, error) {
	tags, err := s.TagStore.List(ctx, kind)
	if err != nil || s.done {
		return tags, err
	}
	s.done = true
	if _, err := s.TagStore.Create(ctx, kind, "Rust"); err != nil {
		return nil, err
	}
	return tags, s.catalog.Invalidate(ctx, kind)
}

func TestCatalog_InvalidationDuringLoadSkipsFill(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	store := &invalidatingStore{TagStore: memstore.New().Tags()}
	store.MustTags(domain.SkillTag, "Go")
	catalog := NewCatalog(client, store, time.Minute)
	store.catalog = catalog

	names, err := catalog.Names(ctx, domain.SkillTag)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, names)
	assert.False(t, mr.Exists("collab:catalog:skill"), "list loaded before the invalidation must not be cached")

	names, err = catalog.Names(ctx, domain.SkillTag)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, names)

	cached, err := mr.Get("collab:catalog:skill")
	require.NoError(t, err)
	assert.JSONEq(t, `["Go","Rust"]`, cached)
}

func TestScheduler_RefreshAll(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := memstore.New().Tags()
	store.MustTags(domain.SkillTag, "Go")
	store.MustTags(domain.CategoryTag, "games")

	s := NewScheduler(NewCatalog(client, store, time.Minute), "0 */5 * * * *")
	s.RefreshAll(context.Background())

	skills, err := mr.Get("collab:catalog:skill")
	require.NoError(t, err)
	assert.JSONEq(t, `["Go"]`, skills)
	categories, err := mr.Get("collab:catalog:category")
	require.NoError(t, err)
	assert.JSONEq(t, `["games"]`, categories)
}

func TestScheduler_StartRejectsBadSpec(t *testing.T) {
	s := NewScheduler(NewCatalog(nil, memstore.New().Tags(), time.Minute), "not a cron spec")
	assert.Error(t, s.Start())
	s.Stop()
}

func TestHandler_ListsNames(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := memstore.New().Tags()
	store.MustTags(domain.SkillTag, "Go", "Python")
	store.MustTags(domain.CategoryTag, "web")

	router := gin.New()
	Register(router.Group(""), NewCatalog(nil, store, time.Minute))

	for path, want := range map[string][]string{
		"/skills":     {"Go", "Python"},
		"/categories": {"web"},
	} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code, path)

		var body struct {
			Names []string `json:"names"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, want, body.Names, path)
	}
}

type brokenListStore struct {
	*memstore.TagStore
}

func (brokenListStore) List(context.Context, domain.TagKind) ([]domain.Tag, error) {
	return nil, errors.New("connection reset")
}

func TestScheduler_RefreshAllKeepsGoingOnError(t *testing.T) {
	client, mr := setupTestRedis(t)
	catalog := NewCatalog(client, brokenListStore{memstore.New().Tags()}, time.Minute)

	NewScheduler(catalog, "0 */5 * * * *").RefreshAll(context.Background())

	assert.False(t, mr.Exists("collab:catalog:skill"))
	assert.False(t, mr.Exists("collab:catalog:category"))

	_, err := catalog.Refresh(context.Background(), domain.SkillTag)
	assert.ErrorContains(t, err, "connection reset")
}
