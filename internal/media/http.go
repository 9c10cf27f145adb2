package media

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/api/http/respond"
	"github.com/tunakleague/collabin-backend/internal/auth"
	"github.com/tunakleague/collabin-backend/internal/domain"
)

// OwnershipChecker loads a project only when callerID owns it.
type OwnershipChecker interface {
	Owned(ctx context.Context, callerID, id int64) (*domain.Project, error)
}

type Handler struct {
	presigner *Presigner
	projects  OwnershipChecker
}

// Register attaches POST /projects/:id/image-upload and POST
// /me/image-upload. A nil presigner answers 503.
func Register(projects, me *gin.RouterGroup, presigner *Presigner, owner OwnershipChecker) {
	h := &Handler{presigner: presigner, projects: owner}

	projects.POST("/:id/image-upload", h.projectImage)
	me.POST("/image-upload", h.profileImage)
}

type uploadReq struct {
	ContentType string `json:"content_type"`
}

func (h *Handler) projectImage(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.projects.Owned(c.Request.Context(), auth.ProfileID(c), id); err != nil {
		respond.Error(c, "media.project", err)
		return
	}
	h.presign(c, "projects", id)
}

func (h *Handler) profileImage(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	h.presign(c, "profiles", auth.ProfileID(c))
}

func (h *Handler) enabled(c *gin.Context) bool {
	if h.presigner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return false
	}
	return true
}

func (h *Handler) presign(c *gin.Context, prefix string, ownerID int64) {
	var req uploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	up, err := h.presigner.ImageUpload(c.Request.Context(), prefix, ownerID, req.ContentType)
	if err != nil {
		if errors.Is(err, ErrNotAnImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respond.Error(c, "media.presign", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload": up})
}
