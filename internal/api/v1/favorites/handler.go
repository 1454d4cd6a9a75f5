package favorites

import (
	"net/http"

	"praia-backend/internal/api/v1/common"
	"praia-backend/internal/services"
	"praia-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler serves the tool and training favorites. Prompt favorites live with the prompts.
type Handler struct {
	tools    *services.ToolFavorites
	training *services.TrainingFavorites
}

func NewHandler(tools *services.ToolFavorites, training *services.TrainingFavorites) *Handler {
	return &Handler{tools: tools, training: training}
}

// ListToolFavorites godoc
// @Summary List my favorite tools
// @Tags favorites
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.FavoriteTool}
// @Failure 401 {object} utils.Response
// @Router /tools/favorites [get]
func (h *Handler) ListToolFavorites(c *gin.Context) {
	favs, err := h.tools.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Favorites retrieved successfully", favs))
}

// ToggleToolFavorite godoc
// @Summary Favorite or un-favorite a catalog tool
// @Tags favorites
// @Produce json
// @Security ApiKeyAuth
// @Param catalogId path string true "Catalog tool ID"
// @Success 200 {object} utils.Response{data=common.ToggleResponse}
// @Failure 404 {object} utils.Response
// @Router /tools/favorites/{catalogId} [post]
func (h *Handler) ToggleToolFavorite(c *gin.Context) {
	res, err := h.tools.Toggle(c.Request.Context(), c.Param("catalogId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respondToggle(c, res.Favorited, res.Record)
}

// ListTrainingFavorites godoc
// @Summary List my favorite training modules
// @Description Lessons are read from the current catalog.
// @Tags favorites
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.FavoriteTraining}
// @Failure 401 {object} utils.Response
// @Router /training/favorites [get]
func (h *Handler) ListTrainingFavorites(c *gin.Context) {
	favs, err := h.training.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Favorites retrieved successfully", favs))
}

// ToggleTrainingFavorite godoc
// @Summary Favorite or un-favorite a training module
// @Tags favorites
// @Produce json
// @Security ApiKeyAuth
// @Param catalogId path string true "Catalog module ID"
// @Success 200 {object} utils.Response{data=common.ToggleResponse}
// @Failure 404 {object} utils.Response
// @Router /training/favorites/{catalogId} [post]
func (h *Handler) ToggleTrainingFavorite(c *gin.Context) {
	res, err := h.training.Toggle(c.Request.Context(), c.Param("catalogId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respondToggle(c, res.Favorited, res.Record)
}

func respondToggle(c *gin.Context, favorited bool, record interface{}) {
	msg := "Removed from favorites"
	if favorited {
		msg = "Added to favorites"
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(msg, common.ToggleResponse{Favorited: favorited, Record: record}))
}
