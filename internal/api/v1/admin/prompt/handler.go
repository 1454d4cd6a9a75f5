package prompt

import (
	"net/http"

	"praia-backend/internal/services"
	"praia-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	prompts *services.PromptService
}

func NewHandler(prompts *services.PromptService) *Handler {
	return &Handler{prompts: prompts}
}

// RemovePublicPrompt godoc
// @Summary Take down a community prompt
// @Description Delete every version of a public prompt lineage. Admin only.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param historyId path string true "History ID"
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/public-prompts/{historyId} [delete]
func (h *Handler) RemovePublicPrompt(c *gin.Context) {
	if err := h.prompts.RemovePublicLineage(c.Request.Context(), c.Param("historyId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Public prompt removed successfully", nil))
}
