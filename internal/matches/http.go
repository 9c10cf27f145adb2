package matches

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/api/http/respond"
	"github.com/tunakleague/collabin-backend/internal/auth"
	"github.com/tunakleague/collabin-backend/internal/ranking"
)

type Handler struct {
	engine *Engine
}

// Register attaches GET /project-matches and /person-matches to the /me group.
func Register(me *gin.RouterGroup, engine *Engine) {
	h := &Handler{engine: engine}

	me.GET("/project-matches", h.projectMatches)
	me.GET("/person-matches", h.personMatches)
}

func (h *Handler) projectMatches(c *gin.Context) {
	projects, err := h.engine.MatchedProjectsFor(c.Request.Context(), auth.ProfileID(c))
	if err != nil {
		respond.Error(c, "matches.projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": projects})
}

func (h *Handler) personMatches(c *gin.Context) {
	people, err := h.engine.MatchedPeopleFor(c.Request.Context(), auth.ProfileID(c))
	if err != nil {
		respond.Error(c, "matches.people", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": ranking.SummarizeProfiles(people)})
}
