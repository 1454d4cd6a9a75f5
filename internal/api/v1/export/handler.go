package export

import (
	"fmt"
	"net/http"
	"time"

	"praia-backend/internal/services"
	"praia-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	export *services.ExportService
	now    func() time.Time
}

func NewHandler(export *services.ExportService) *Handler {
	return &Handler{export: export, now: time.Now}
}

// Export godoc
// @Summary Export my records as CSV
// @Description Download the caller's prompts, favorite tools or favorite training modules.
// @Tags export
// @Produce text/csv
// @Security ApiKeyAuth
// @Param kind path string true "What to export" Enums(prompts, tools, training)
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /export/{kind} [get]
func (h *Handler) Export(c *gin.Context) {
	kind, err := services.ParseExportKind(c.Param("kind"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	csvContent, err := h.export.Export(c.Request.Context(), kind)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filename := services.ExportFilename(kind, h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvContent)
}
