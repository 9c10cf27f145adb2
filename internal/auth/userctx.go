package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/observability"
)

// ProfileEnsurer creates the caller's profile on first sight and returns its id.
type ProfileEnsurer interface {
	Ensure(ctx context.Context, u domain.UpsertProfile) (int64, error)
}

// HeaderIdentity trusts X-User-Id / X-User-Name as the caller identity.
// Use this ONLY for development/testing (AUTH_MODE=header).
func HeaderIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := strings.TrimSpace(c.GetHeader("X-User-Id")); uid != "" {
			c.Set(CtxFirebaseUID, uid)
			c.Set(CtxDisplayName, strings.TrimSpace(c.GetHeader("X-User-Name")))
		}
		c.Next()
	}
}

// WithProfile resolves the authenticated identity to exactly one profile
// and stores its id under CtxProfileID. Requests without an identity are
// rejected with 401.
func WithProfile(profiles ProfileEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := UserFirebaseUID(c)
		if fuid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		id, err := profiles.Ensure(c.Request.Context(), domain.UpsertProfile{
			FirebaseUID: fuid,
			DisplayName: c.GetString(CtxDisplayName),
		})
		if err != nil {
			observability.NewLogger(c.Request.Context()).LogError("auth.ensure_profile", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ensure profile failed"})
			c.Abort()
			return
		}

		c.Set(CtxProfileID, id)
		c.Next()
	}
}
