package swipes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/api/http/respond"
	"github.com/tunakleague/collabin-backend/internal/auth"
	"github.com/tunakleague/collabin-backend/internal/domain"
)

type Handler struct {
	ledger *Ledger
}

// Register attaches the swipe routes. writeGuards run before each
// decision write, e.g. rate limiting.
func Register(rg *gin.RouterGroup, ledger *Ledger, writeGuards ...gin.HandlerFunc) {
	h := &Handler{ledger: ledger}

	rg.GET("/:projectId/person", h.personState)
	rg.POST("/:projectId/person", guarded(writeGuards, h.person)...)
	rg.POST("/:projectId/project", guarded(writeGuards, h.project)...)
}

func guarded(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, handler)
}

type personReq struct {
	Decision string `json:"decision"`
}

type projectReq struct {
	Decision  string `json:"decision"`
	ProfileID int64  `json:"profile_id"`
}

func (h *Handler) person(c *gin.Context) {
	projectID, ok := respond.IDParam(c, "projectId")
	if !ok {
		return
	}

	var req personReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	d, err := domain.ParseDecision(req.Decision)
	if err != nil {
		respond.Error(c, "swipes.person", err)
		return
	}

	state, err := h.ledger.RecordPersonDecision(c.Request.Context(), auth.ProfileID(c), projectID, d)
	if err != nil {
		respond.Error(c, "swipes.person", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"swipe": state})
}

func (h *Handler) project(c *gin.Context) {
	projectID, ok := respond.IDParam(c, "projectId")
	if !ok {
		return
	}

	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProfileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	d, err := domain.ParseDecision(req.Decision)
	if err != nil {
		respond.Error(c, "swipes.project", err)
		return
	}

	state, err := h.ledger.RecordOwnerDecision(c.Request.Context(), auth.ProfileID(c), req.ProfileID, projectID, d)
	if err != nil {
		respond.Error(c, "swipes.project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"swipe": state})
}

func (h *Handler) personState(c *gin.Context) {
	projectID, ok := respond.IDParam(c, "projectId")
	if !ok {
		return
	}

	state, err := h.ledger.State(c.Request.Context(), domain.SwipeKey{ProfileID: auth.ProfileID(c), ProjectID: projectID})
	if err != nil {
		respond.Error(c, "swipes.state", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"swipe": state})
}
