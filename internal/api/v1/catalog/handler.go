package catalog

import (
	"net/http"

	"praia-backend/internal/api/v1/common"
	"praia-backend/internal/services"
	"praia-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *services.CatalogService
}

func NewHandler(catalog *services.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// ListPrompts godoc
// @Summary List catalog prompts
// @Description Built-in prompts grouped by exact title, plus one group per public community prompt, newest first.
// @Tags catalog
// @Produce json
// @Param search query string false "Case-insensitive match on title and description"
// @Param category query string false "Category filter"
// @Param framework query string false "Only groups with a member in this framework"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} utils.Response{data=common.PageResponse{items=[]common.GroupedPromptResponse}}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /catalog/prompts [get]
func (h *Handler) ListPrompts(c *gin.Context) {
	q, err := common.ParseQuery(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	page, err := h.catalog.ListPrompts(c.Request.Context(), q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	items := make([]common.GroupedPromptResponse, 0, len(page.Items))
	for _, g := range page.Items {
		items = append(items, common.ToGroupedPromptResponse(g))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompts retrieved successfully", common.NewPageResponse(page, items)))
}

// GetPrompt godoc
// @Summary Get a catalog prompt group
// @Tags catalog
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} utils.Response{data=common.GroupedPromptResponse}
// @Failure 404 {object} utils.Response
// @Router /catalog/prompts/{id} [get]
func (h *Handler) GetPrompt(c *gin.Context) {
	g, err := h.catalog.GetPrompt(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt retrieved successfully", common.ToGroupedPromptResponse(g)))
}

// ListTools godoc
// @Summary List catalog AI tools
// @Tags catalog
// @Produce json
// @Param search query string false "Case-insensitive match on name, description and tags"
// @Param category query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} utils.Response{data=common.PageResponse{items=[]models.AITool}}
// @Failure 400 {object} utils.Response
// @Router /catalog/tools [get]
func (h *Handler) ListTools(c *gin.Context) {
	q, err := common.ParseQuery(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	page := h.catalog.ListTools(q)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tools retrieved successfully", common.NewPageResponse(page, page.Items)))
}

// ListTraining godoc
// @Summary List catalog training modules
// @Tags catalog
// @Produce json
// @Param search query string false "Case-insensitive match on title and description"
// @Param category query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} utils.Response{data=common.PageResponse{items=[]models.TrainingModule}}
// @Failure 400 {object} utils.Response
// @Router /catalog/training [get]
func (h *Handler) ListTraining(c *gin.Context) {
	q, err := common.ParseQuery(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	page := h.catalog.ListTraining(q)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Training modules retrieved successfully", common.NewPageResponse(page, page.Items)))
}

// GetTraining godoc
// @Summary Get a training module with its lessons
// @Tags catalog
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} utils.Response{data=models.TrainingModule}
// @Failure 404 {object} utils.Response
// @Router /catalog/training/{id} [get]
func (h *Handler) GetTraining(c *gin.Context) {
	m, err := h.catalog.GetTraining(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Training module retrieved successfully", m))
}
