package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authctx "github.com/tunakleague/collabin-backend/internal/auth"
)

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("token rejected")
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	verifier := fakeVerifier{tokens: map[string]*auth.Token{
		"good": {UID: "uid-1", Claims: map[string]interface{}{"name": "Carol"}},
	}}

	router := gin.New()
	router.Use(FirebaseAuthMiddleware(verifier))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, authctx.UserFirebaseUID(c)+"|"+c.GetString(authctx.CtxDisplayName))
	})

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "uid-1|Carol"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"rejected token", "Bearer forged", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rr.Body.String())
			}
		})
	}
}
