package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxDisplayName = "display_name"
	CtxProfileID   = "profile_id"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// This is set by FirebaseAuthMiddleware or HeaderIdentity.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// ProfileID returns the caller's profile id set by WithProfile, or 0.
func ProfileID(c *gin.Context) int64 {
	return c.GetInt64(CtxProfileID)
}
