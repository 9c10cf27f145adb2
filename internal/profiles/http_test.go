package profiles

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunakleague/collabin-backend/internal/auth"
	"github.com/tunakleague/collabin-backend/internal/domain"
)

func newRouter(svc *Service, caller int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	me := r.Group("/me", func(c *gin.Context) {
		c.Set(auth.CtxProfileID, caller)
		c.Next()
	})
	Register(me, svc)
	return r
}

func TestHandler_UpdateThenGet(t *testing.T) {
	svc, _, id := newService(t)
	r := newRouter(svc, id)

	w := httptest.NewRecorder()
	body := `{"summary":"hi","location":"Porto","skills":["Go"],"categories":["Web","Games"]}`
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/me/profile", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me/profile", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Profile domain.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Porto", resp.Profile.Location)
	assert.Equal(t, []string{"Web", "Games"}, resp.Profile.Categories)
	assert.NotContains(t, w.Body.String(), "uid-1")
}

func TestHandler_UpdateRejectsBadInput(t *testing.T) {
	svc, _, id := newService(t)
	r := newRouter(svc, id)

	for body, status := range map[string]int{
		`{"skills":`:            http.StatusBadRequest,
		`{"skills":["   "]}`:    http.StatusBadRequest,
		`{"categories":["ok"]}`: http.StatusOK,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/me/profile", strings.NewReader(body)))
		assert.Equal(t, status, w.Code, body)
	}
}
