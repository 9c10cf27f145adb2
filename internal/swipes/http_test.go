package swipes

import (
	"encoding/json"
	"fmt"
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

func newRouter(l *Ledger, caller int64, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/swipes", func(c *gin.Context) {
		c.Set(auth.CtxProfileID, caller)
		c.Next()
	})
	Register(rg, l, guards...)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestHandler_BothSidesMatch(t *testing.T) {
	f := newFixture(t)
	personAPI := newRouter(f.ledger, f.person)
	ownerAPI := newRouter(f.ledger, f.owner)

	w := do(personAPI, http.MethodPost, fmt.Sprintf("/swipes/%d/person", f.project), `{"decision":"LIKE"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := fmt.Sprintf(`{"decision":"like","profile_id":%d}`, f.person)
	w = do(ownerAPI, http.MethodPost, fmt.Sprintf("/swipes/%d/project", f.project), body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Swipe domain.SwipeState `json:"swipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Swipe.IsMatch)
	assert.Contains(t, w.Body.String(), `"person_decision":"LIKE"`)

	w = do(personAPI, http.MethodGet, fmt.Sprintf("/swipes/%d/person", f.project), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_match":true`)
}

func TestHandler_Errors(t *testing.T) {
	f := newFixture(t)
	personAPI := newRouter(f.ledger, f.person)
	projectPath := fmt.Sprintf("/swipes/%d/project", f.project)
	personPath := fmt.Sprintf("/swipes/%d/person", f.project)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown decision", http.MethodPost, personPath, `{"decision":"MAYBE"}`, http.StatusBadRequest},
		{"undecided is not recordable", http.MethodPost, personPath, `{"decision":"UNDECIDED"}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, personPath, `{`, http.StatusBadRequest},
		{"bad project id", http.MethodPost, "/swipes/x/person", `{"decision":"LIKE"}`, http.StatusBadRequest},
		{"unknown project", http.MethodPost, "/swipes/999/person", `{"decision":"LIKE"}`, http.StatusNotFound},
		{"missing profile id", http.MethodPost, projectPath, `{"decision":"LIKE"}`, http.StatusBadRequest},
		{"not the owner", http.MethodPost, projectPath, fmt.Sprintf(`{"decision":"LIKE","profile_id":%d}`, f.person), http.StatusForbidden},
		{"no swipe yet", http.MethodGet, personPath, ``, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(personAPI, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestHandler_WriteGuardsRunBeforeWrites(t *testing.T) {
	f := newFixture(t)
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "slow down"})
	}
	r := newRouter(f.ledger, f.person, deny)

	w := do(r, http.MethodPost, fmt.Sprintf("/swipes/%d/person", f.project), `{"decision":"LIKE"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = do(r, http.MethodGet, fmt.Sprintf("/swipes/%d/person", f.project), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
