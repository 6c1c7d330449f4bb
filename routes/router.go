package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/linkbook/config"
	"github.com/cppla/linkbook/controllers"
	"github.com/cppla/linkbook/middleware"
	"github.com/cppla/linkbook/repository"
	"github.com/cppla/linkbook/services"
	"github.com/cppla/linkbook/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.L()
	if err := utils.RegisterValidators(); err != nil {
		logger.Warn("custom validators not registered", zap.Error(err))
	}

	policy, err := services.ParseOrphanPolicy(cfg.TreeOrphanPolicy)
	if err != nil {
		logger.Warn("falling back to promote orphan policy", zap.Error(err))
		policy = services.OrphanPromote
	}

	store := repository.New(db)
	userService := services.NewUserService(store, utils.BcryptHasher{}, logger.Named("users"))
	commentService := services.NewCommentService(store, store, policy, logger.Named("comments"))
	folderService := services.NewFolderService(store, commentService, policy, logger.Named("folders"))

	r := gin.New()
	r.Use(middleware.RequestID())
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}
	r.Use(middleware.Metrics())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		// credentials cannot be combined with a wildcard origin
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(utils.Metrics().Registry, promhttp.HandlerOpts{})))

	authController := controllers.NewAuthController(userService)
	userController := controllers.NewUserController(userService)
	folderController := controllers.NewFolderController(folderService)
	commentController := controllers.NewCommentController(commentService)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	// Public reads; a token, when present, unlocks the caller's private folders
	optional := api.Group("")
	optional.Use(middleware.OptionalAuth())
	optional.GET("/folders/:id", folderController.Detail)
	optional.GET("/folders/:id/comments", commentController.Tree)
	api.GET("/users/:id/folders", folderController.ListByUser)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.GET("/users/me", userController.Me)
	protected.PUT("/users/me", userController.UpdateMe)
	protected.GET("/users", userController.FindByEmail)
	protected.GET("/folders", folderController.ListMine)
	protected.POST("/folders", folderController.Create)
	protected.PUT("/folders/:id", folderController.Update)
	protected.DELETE("/folders/:id", folderController.Delete)
	protected.POST("/folders/:id/comments", commentController.Create)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		utils.Error(ctx, http.StatusNotFound, 40400, "not found")
	})

	return r
}
