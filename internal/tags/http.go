package tags

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/api/http/respond"
	"github.com/tunakleague/collabin-backend/internal/domain"
)

type Handler struct {
	catalog *Catalog
}

// Register attaches GET /skills and GET /categories.
func Register(rg *gin.RouterGroup, catalog *Catalog) {
	h := &Handler{catalog: catalog}

	rg.GET("/skills", h.list(domain.SkillTag))
	rg.GET("/categories", h.list(domain.CategoryTag))
}

func (h *Handler) list(kind domain.TagKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := h.catalog.Names(c.Request.Context(), kind)
		if err != nil {
			respond.Error(c, "tags.list", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"names": names})
	}
}
