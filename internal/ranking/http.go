package ranking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/api/http/respond"
	"github.com/tunakleague/collabin-backend/internal/auth"
	"github.com/tunakleague/collabin-backend/internal/domain"
)

type ProfileSummary struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
	Categories []string `json:"categories"`
}

func SummarizeProfiles(in []domain.Profile) []ProfileSummary {
	out := make([]ProfileSummary, 0, len(in))
	for _, p := range in {
		out = append(out, ProfileSummary{
			ID:         p.ID,
			Name:       p.DisplayName,
			Location:   p.Location,
			Skills:     p.Skills,
			Categories: p.Categories,
		})
	}
	return out
}

type Handler struct {
	svc *Service
}

// Register attaches GET /projects/:id/candidates and GET /me/project-candidates.
func Register(projects, me *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	projects.GET("/:id/candidates", h.peopleForProject)
	me.GET("/project-candidates", h.projectsForMe)
}

func (h *Handler) peopleForProject(c *gin.Context) {
	projectID, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}

	people, err := h.svc.PeopleForProject(c.Request.Context(), projectID)
	if err != nil {
		respond.Error(c, "ranking.people", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": SummarizeProfiles(people)})
}

func (h *Handler) projectsForMe(c *gin.Context) {
	projects, err := h.svc.ProjectsForProfile(c.Request.Context(), auth.ProfileID(c))
	if err != nil {
		respond.Error(c, "ranking.projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": projects})
}
