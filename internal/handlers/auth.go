package handlers

import (
	"github.com/ajaybhatia/xync-server/internal/middleware"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/ajaybhatia/xync-server/internal/services"
	"github.com/ajaybhatia/xync-server/internal/utils"
	"github.com/ajaybhatia/xync-server/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService  *services.UserService
	tokenService *services.TokenService
}

func NewAuthHandler(userService *services.UserService, tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.TrackAuthAttempt("failure", "register")
		utils.Error(c, err)
		return
	}

	token, expiresAt, err := h.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		utils.Error(c, err)
		return
	}

	middleware.TrackAuthAttempt("success", "register")
	utils.Created(c, models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.TrackAuthAttempt("failure", "login")
		utils.Error(c, err)
		return
	}

	token, expiresAt, err := h.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		utils.Error(c, err)
		return
	}

	middleware.TrackAuthAttempt("success", "login")
	utils.Success(c, models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, user)
}
