package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/memstore"
)

func newIdentityRouter(profiles ProfileEnsurer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(HeaderIdentity(), WithProfile(profiles))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"profile_id": ProfileID(c), "uid": UserFirebaseUID(c)})
	})
	return r
}

func TestWithProfile_ResolvesSameProfileForSameUser(t *testing.T) {
	profiles := memstore.New().Profiles()
	router := newIdentityRouter(profiles)

	var ids []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-User-Id", "uid-alice")
		req.Header.Set("X-User-Name", "Alice")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		ids = append(ids, rr.Body.String())
	}
	assert.Equal(t, ids[0], ids[1])

	p, err := profiles.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.DisplayName)
	assert.Equal(t, "uid-alice", p.FirebaseUID)
}

func TestWithProfile_RejectsAnonymous(t *testing.T) {
	router := newIdentityRouter(memstore.New().Profiles())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

type brokenEnsurer struct{}

func (brokenEnsurer) Ensure(context.Context, domain.UpsertProfile) (int64, error) {
	return 0, errors.New("db down")
}

func TestWithProfile_StoreFailure(t *testing.T) {
	router := newIdentityRouter(brokenEnsurer{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-Id", "uid-bob")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
