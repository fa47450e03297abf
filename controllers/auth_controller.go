package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-backend/models"
	"pos-backend/services"
)

// AuthController handles HTTP requests for user registration and login.
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(ctx *gin.Context) {
	var req models.AuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Username and password are required")
		return
	}

	if svcErr := ac.authService.Register(ctx.Request.Context(), req.Username, req.Password); svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "User registered successfully", nil)
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(ctx *gin.Context) {
	var req models.AuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, svcErr := ac.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "Login successful", models.LoginResponse{Token: token})
}
