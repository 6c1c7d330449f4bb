package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/linkbook/services"
	"github.com/cppla/linkbook/utils"
)

// respondServiceError maps service sentinels onto HTTP status and business codes.
// Anything unrecognised is logged and answered with the given fallback.
func respondServiceError(ctx *gin.Context, err error, fallbackCode int, fallbackMsg string) {
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.Error(ctx, http.StatusConflict, 40901, "email already registered")
	case errors.Is(err, services.ErrLoginFailure):
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid email or password")
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40410, "resource not found")
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40301, "permission denied")
	case errors.Is(err, services.ErrInvalidInterest):
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid interest field")
	case errors.Is(err, services.ErrConsistency):
		utils.Metrics().TreeFailures.WithLabelValues("consistency").Inc()
		utils.Error(ctx, http.StatusConflict, 40902, "inconsistent hierarchy")
	default:
		utils.L().Error(fallbackMsg,
			zap.Error(err),
			zap.String("path", ctx.FullPath()),
			zap.String("request_id", ctx.GetString("request_id")),
		)
		utils.Error(ctx, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}

// paramID reads a positive numeric path parameter.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(ctx.Param(name)), 10, 64)
	if err != nil || n == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}
