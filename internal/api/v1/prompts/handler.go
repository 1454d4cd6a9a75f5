package prompts

import (
	"net/http"
	"strconv"

	"praia-backend/internal/api/v1/common"
	"praia-backend/internal/models"
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

// CreatePrompt godoc
// @Summary Create a prompt
// @Description Start a new prompt lineage at version 1.
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreatePromptRequest true "Create Prompt Request"
// @Success 201 {object} utils.Response{data=common.PromptResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts [post]
func (h *Handler) CreatePrompt(c *gin.Context) {
	var req CreatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	p, err := h.prompts.Create(c.Request.Context(), req.toDraft())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Prompt created successfully", common.ToPromptResponse(p)))
}

// ListPrompts godoc
// @Summary List my prompts
// @Description Latest version of each lineage, newest first. Favorite snapshots are included.
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param folder_id query string false "Only prompts in this folder"
// @Param unfiled query bool false "Only prompts outside every folder"
// @Success 200 {object} utils.Response{data=[]common.PromptResponse}
// @Failure 401 {object} utils.Response
// @Router /prompts [get]
func (h *Handler) ListPrompts(c *gin.Context) {
	var filter services.ListFilter
	if folderID := c.Query("folder_id"); folderID != "" {
		filter.FolderID = &folderID
	}
	if raw := c.Query("unfiled"); raw != "" {
		unfiled, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid unfiled flag"))
			return
		}
		filter.Unfiled = unfiled
	}

	ps, err := h.prompts.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompts retrieved successfully", common.ToPromptResponses(ps)))
}

// GetPrompt godoc
// @Summary Get one prompt version
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Prompt ID"
// @Success 200 {object} utils.Response{data=common.PromptResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [get]
func (h *Handler) GetPrompt(c *gin.Context) {
	p, err := h.prompts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt retrieved successfully", common.ToPromptResponse(p)))
}

// UpdatePrompt godoc
// @Summary Save a new version of a prompt
// @Description Appends a version built from the given version with the changes applied. The new version becomes the latest.
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Prompt ID"
// @Param request body UpdatePromptRequest true "Update Prompt Request"
// @Success 200 {object} utils.Response{data=common.PromptResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [put]
func (h *Handler) UpdatePrompt(c *gin.Context) {
	var req UpdatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	p, err := h.prompts.Update(c.Request.Context(), c.Param("id"), req.toPatch())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt updated successfully", common.ToPromptResponse(p)))
}

// DeletePrompt godoc
// @Summary Delete one prompt version
// @Description Deleting the latest version promotes the highest remaining one. Deleting a favorite snapshot un-favorites it.
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Prompt ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [delete]
func (h *Handler) DeletePrompt(c *gin.Context) {
	if err := h.prompts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", nil))
}

// GetHistory godoc
// @Summary List every version of a lineage
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param historyId path string true "History ID"
// @Success 200 {object} utils.Response{data=[]common.PromptResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/history/{historyId} [get]
func (h *Handler) GetHistory(c *gin.Context) {
	history, err := h.prompts.HistoryOf(c.Request.Context(), c.Param("historyId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("History retrieved successfully", common.ToPromptResponses(history)))
}

// MoveToFolder godoc
// @Summary Move a prompt lineage into a folder
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Prompt ID"
// @Param request body MoveToFolderRequest true "Target folder"
// @Success 200 {object} utils.Response{data=common.PromptResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/folder [patch]
func (h *Handler) MoveToFolder(c *gin.Context) {
	var req MoveToFolderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	p, err := h.prompts.MoveToFolder(c.Request.Context(), c.Param("id"), req.FolderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt moved successfully", common.ToPromptResponse(p)))
}

// ToggleFavorite godoc
// @Summary Favorite or un-favorite a catalog prompt
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param catalogId path string true "Catalog prompt ID"
// @Success 200 {object} utils.Response{data=common.ToggleResponse}
// @Failure 404 {object} utils.Response
// @Router /prompts/favorites/{catalogId} [post]
func (h *Handler) ToggleFavorite(c *gin.Context) {
	res, err := h.prompts.ToggleFavorite(c.Request.Context(), c.Param("catalogId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(toggleMessage(res.Favorited), common.ToggleResponse{
		Favorited: res.Favorited,
		Record:    common.ToPromptResponse(res.Record),
	}))
}

// ListFavorites godoc
// @Summary List my favorite prompts
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]common.PromptResponse}
// @Router /prompts/favorites [get]
func (h *Handler) ListFavorites(c *gin.Context) {
	favs, err := h.prompts.ListFavorites(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Favorites retrieved successfully", common.ToPromptResponses(favs)))
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags folders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateFolderRequest true "Create Folder Request"
// @Success 201 {object} utils.Response{data=models.PromptFolder}
// @Failure 400 {object} utils.Response
// @Router /folders [post]
func (h *Handler) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	f, err := h.prompts.CreateFolder(c.Request.Context(), req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Folder created successfully", f))
}

// ListFolders godoc
// @Summary List my folders
// @Tags folders
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.PromptFolder}
// @Router /folders [get]
func (h *Handler) ListFolders(c *gin.Context) {
	folders, err := h.prompts.ListFolders(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if folders == nil {
		folders = []models.PromptFolder{}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Folders retrieved successfully", folders))
}

func toggleMessage(favorited bool) string {
	if favorited {
		return "Added to favorites"
	}
	return "Removed from favorites"
}
