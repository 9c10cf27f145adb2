package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/api/http/respond"
	"github.com/tunakleague/collabin-backend/internal/auth"
	"github.com/tunakleague/collabin-backend/internal/domain"
)

type Handler struct {
	svc *Service
}

// Register attaches GET and PUT /profile to the /me group.
func Register(me *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	me.GET("/profile", h.get)
	me.PUT("/profile", h.update)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), auth.ProfileID(c))
	if err != nil {
		respond.Error(c, "profiles.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

type updateReq struct {
	Summary    string   `json:"summary"`
	Location   string   `json:"location"`
	ImagePath  string   `json:"image_path"`
	Skills     []string `json:"skills"`
	Categories []string `json:"categories"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.ProfileID(c), domain.ProfileInput{
		Summary:    req.Summary,
		Location:   req.Location,
		ImagePath:  req.ImagePath,
		Skills:     req.Skills,
		Categories: req.Categories,
	})
	if err != nil {
		respond.Error(c, "profiles.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}
