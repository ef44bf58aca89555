package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type catalogResponse struct {
	Categories   []domain.Category   `json:"categories"`
	Difficulties []domain.Difficulty `json:"difficulties"`
	Milestones   []int               `json:"milestones"`
}

type CatalogHandler struct {
	milestones []int
}

func NewCatalogHandler(milestones []int) *CatalogHandler {
	if len(milestones) == 0 {
		milestones = domain.DefaultMilestones
	}
	return &CatalogHandler{milestones: milestones}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/catalog", h.GetCatalog)
}

// GetCatalog godoc
// @Summary      Categories, difficulties and the milestone ladder
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  catalogResponse
// @Router       /catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, catalogResponse{
		Categories:   domain.Categories,
		Difficulties: domain.Difficulties,
		Milestones:   h.milestones,
	})
}
