package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/linkbook/middleware"
	"github.com/cppla/linkbook/services"
	"github.com/cppla/linkbook/utils"
)

// AuthController handles registration, login and logout with email and password.
type AuthController struct {
	users *services.UserService
}

// NewAuthController creates an AuthController.
func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{users: users}
}

// Register handles local account registration with bcrypt hashing.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email,max=254"`
		Password string `json:"password" binding:"required,min=6,max=72"`
		Confirm  string `json:"confirm"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	if req.Confirm != "" && req.Confirm != req.Password {
		utils.Error(ctx, http.StatusBadRequest, 40002, "passwords do not match")
		return
	}

	id, err := a.users.Register(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(ctx, err, 50001, "failed to create user")
		return
	}

	utils.Metrics().Registrations.Inc()
	utils.Created(ctx, gin.H{"id": id, "email": services.NormalizeEmail(req.Email)})
}

// Login authenticates a user and returns a JWT token.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	user, err := a.users.Authenticate(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.Metrics().LoginFailures.Inc()
		respondServiceError(ctx, err, 50003, "failed to authenticate")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, utils.TokenTTL())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"image": user.Image,
		},
	})
}

// Logout invalidates the token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	token := strings.TrimSpace(ctx.GetString(middleware.ContextTokenKey))
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(utils.TokenTTL())
	if claims.RegisteredClaims.ExpiresAt != nil {
		expiresAt = claims.RegisteredClaims.ExpiresAt.Time
	}

	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}
