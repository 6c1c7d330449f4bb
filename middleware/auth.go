package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/linkbook/utils"
)

const (
	// ContextUserIDKey is the key used to store authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextEmailKey stores the authenticated email inside Gin context.
	ContextEmailKey = "email"
	// ContextTokenKey stores the raw bearer token.
	ContextTokenKey = "token"
)

// AuthRequired ensures the request is authenticated via JWT.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, status, code, msg := bearerToken(ctx)
		if status != 0 {
			utils.Error(ctx, status, code, msg)
			ctx.Abort()
			return
		}
		if !authenticate(ctx, token) {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// OptionalAuth attaches the principal when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token, status, _, _ := bearerToken(ctx); status == 0 {
			authenticate(ctx, token)
		}
		ctx.Next()
	}
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(ctx *gin.Context) uint {
	if v, ok := ctx.Get(ContextUserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// Email returns the authenticated email, or "" for anonymous requests.
func Email(ctx *gin.Context) string {
	return ctx.GetString(ContextEmailKey)
}

func bearerToken(ctx *gin.Context) (token string, status, code int, msg string) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", http.StatusUnauthorized, 40101, "authorization header missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", http.StatusUnauthorized, 40102, "invalid authorization header format"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", http.StatusUnauthorized, 40103, "empty bearer token"
	}
	return token, 0, 0, ""
}

func authenticate(ctx *gin.Context, token string) bool {
	if utils.IsTokenBlacklisted(token) {
		return false
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return false
	}
	ctx.Set(ContextUserIDKey, claims.UserID)
	ctx.Set(ContextEmailKey, claims.Email)
	ctx.Set(ContextTokenKey, token)
	return true
}
