package projects

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/api/http/respond"
	"github.com/tunakleague/collabin-backend/internal/auth"
	"github.com/tunakleague/collabin-backend/internal/domain"
)

type Handler struct {
	svc *Service
}

func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type projectReq struct {
	Name       string   `json:"name"`
	Summary    string   `json:"summary"`
	ImagePath  string   `json:"image_path"`
	Skills     []string `json:"skills"`
	Categories []string `json:"categories"`
}

func (r projectReq) input() domain.ProjectInput {
	return domain.ProjectInput{
		Name:       r.Name,
		Summary:    r.Summary,
		ImagePath:  r.ImagePath,
		Skills:     r.Skills,
		Categories: r.Categories,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.ProfileID(c), req.input())
	if err != nil {
		h.fail(c, "projects.create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListByOwner(c.Request.Context(), auth.ProfileID(c))
	if err != nil {
		h.fail(c, "projects.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "projects.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}

	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.ProfileID(c), id, req.input())
	if err != nil {
		h.fail(c, "projects.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.ProfileID(c), id); err != nil {
		h.fail(c, "projects.delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) fail(c *gin.Context, operation string, err error) {
	if errors.Is(err, ErrBlankName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Error(c, operation, err)
}
