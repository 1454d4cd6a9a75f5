package auth

import (
	"net/http"

	"praia-backend/internal/middleware"
	"praia-backend/internal/models"
	"praia-backend/internal/services"
	"praia-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth *services.AuthService
}

func NewHandler(auth *services.AuthService) *Handler {
	return &Handler{auth: auth}
}

// Login godoc
// @Summary Log in
// @Description Mocked sign-in: any well-formed email is accepted and gets a bearer token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} utils.Response{data=LoginResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	session, err := h.auth.Login(c.Request.Context(), input.Email, input.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in successfully", LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	}))
}

// Logout godoc
// @Summary Log out
// @Description Revoke the current token and drop everything the user stored this session.
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	token, exp := middleware.TokenFrom(c)
	if err := h.auth.Logout(c.Request.Context(), token, exp); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}

// CurrentUser godoc
// @Summary Get the logged-in user
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=models.Identity}
// @Failure 401 {object} utils.Response
// @Router /auth/user [get]
func (h *Handler) CurrentUser(c *gin.Context) {
	id, err := models.IdentityFrom(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User retrieved successfully", id))
}
