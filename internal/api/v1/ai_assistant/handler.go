package ai_assistant

import (
	"context"
	"net/http"

	"praia-backend/internal/ai"
	"praia-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Enhancer is the part of ai.Gateway the handlers need.
type Enhancer interface {
	Enhance(ctx context.Context, promptText, targetModel string, style ai.Style) (string, error)
	ApplyFramework(ctx context.Context, promptText, frameworkKey string) (string, error)
}

type Handler struct {
	ai Enhancer
}

func NewHandler(enhancer Enhancer) *Handler {
	return &Handler{ai: enhancer}
}

// Enhance godoc
// @Summary Enhance a prompt with AI
// @Description Rewrites the prompt for the target model. Only the BASIC style is available; DETAIL is rejected.
// @Tags ai_assistant
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body EnhanceRequest true "Enhance Request"
// @Success 200 {object} utils.Response{data=EnhanceResponse}
// @Failure 400 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Router /ai/enhance [post]
func (h *Handler) Enhance(c *gin.Context) {
	var req EnhanceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	style, err := ai.ParseStyle(req.Style)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	text, err := h.ai.Enhance(c.Request.Context(), req.Text, req.TargetModel, style)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt enhanced successfully", EnhanceResponse{Text: text}))
}

// ApplyFramework godoc
// @Summary Restructure a prompt with a framework
// @Tags ai_assistant
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body FrameworkRequest true "Framework Request"
// @Success 200 {object} utils.Response{data=EnhanceResponse}
// @Failure 400 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Router /ai/framework [post]
func (h *Handler) ApplyFramework(c *gin.Context) {
	var req FrameworkRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	text, err := h.ai.ApplyFramework(c.Request.Context(), req.Text, req.Framework)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Framework applied successfully", EnhanceResponse{Text: text}))
}
