package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/linkbook/middleware"
	"github.com/cppla/linkbook/models"
	"github.com/cppla/linkbook/services"
	"github.com/cppla/linkbook/utils"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Me returns the profile of the authenticated user.
func (u *UserController) Me(ctx *gin.Context) {
	email := middleware.Email(ctx)
	if email == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	user, err := u.users.FindByEmail(ctx.Request.Context(), email)
	if err != nil {
		respondServiceError(ctx, err, 50010, "failed to get user")
		return
	}
	utils.Success(ctx, user)
}

// FindByEmail looks a user up by the email query parameter.
func (u *UserController) FindByEmail(ctx *gin.Context) {
	var query struct {
		Email string `form:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "a valid email query parameter is required")
		return
	}

	user, err := u.users.FindByEmail(ctx.Request.Context(), query.Email)
	if err != nil {
		respondServiceError(ctx, err, 50011, "failed to get user")
		return
	}
	utils.Success(ctx, user)
}

// UpdateMe replaces the profile of the authenticated user. Omitted fields are cleared.
func (u *UserController) UpdateMe(ctx *gin.Context) {
	email := middleware.Email(ctx)
	if email == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Name      string         `json:"name" binding:"max=64"`
		Image     string         `json:"image" binding:"omitempty,url,max=512"`
		Introduce string         `json:"introduce" binding:"max=2000"`
		Interests []models.Field `json:"interests" binding:"omitempty,max=32,dive,interest_field"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	update := services.ProfileUpdate{
		Name:      utils.SanitizePlain(strings.TrimSpace(req.Name)),
		Image:     strings.TrimSpace(req.Image),
		Introduce: utils.Sanitize(strings.TrimSpace(req.Introduce)),
		Interests: req.Interests,
	}
	if !utils.WithinLength(update.Name, models.MaxNameLen) {
		utils.Error(ctx, http.StatusBadRequest, 40031, "name is too long")
		return
	}
	if err := u.users.UpdateProfile(ctx.Request.Context(), email, update); err != nil {
		respondServiceError(ctx, err, 50031, "failed to update profile")
		return
	}

	user, err := u.users.FindByEmail(ctx.Request.Context(), email)
	if err != nil {
		respondServiceError(ctx, err, 50032, "failed to reload profile")
		return
	}
	utils.Success(ctx, user)
}
