package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/dto"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/requestdata"
	"github.com/coursebay/coursebay-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.BadRequest("invalid request body"))
		return
	}
	user, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.BadRequest("invalid request body"))
		return
	}
	pair, err := h.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, pair)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apperr.BadRequest("invalid request body"))
		return
	}
	pair, err := h.authService.Refresh(c.Request.Context(), body.RefreshToken)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, pair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := h.authService.Logout(c.Request.Context(), rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
