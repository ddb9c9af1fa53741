package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hirePortal/internal/api/middleware"
	"hirePortal/internal/auth"
	"hirePortal/internal/config"
	"hirePortal/internal/database"
	"hirePortal/internal/storage"
)

// RegisterRoutes 注册全部业务路由。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	candidates database.CandidateStore,
	demands database.DemandStore,
	users database.UserStore,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
) {
	candidateHandler := NewCandidateHandler(candidates, logger)
	demandHandler := NewDemandHandler(demands, redisClient, logger)
	userHandler := NewUserHandler(users, logger)
	authHandler := NewAuthHandler(users, authService, redisClient, logger,
		cfg.Auth.LoginRateLimitPerHour, cfg.Auth.LoginLockThreshold, cfg.Auth.LoginLockTTL(), cfg.Auth.CookieDomain)
	documentHandler := NewDocumentHandler(candidates, storageClient, logger, cfg.API.ClamdAddr, cfg.API.MaxUploadSize)
	wsHandler := NewWsHandler(redisClient, authService, logger, []string{cfg.API.CORSOrigin})
	authMiddleware := middleware.AuthMiddleware(authService)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/login", authHandler.Login)
		apiGroup.GET("/ws", wsHandler.HandleConnection)

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
		}

		candidateGroup := apiGroup.Group("/candidates")
		candidateGroup.Use(authMiddleware)
		{
			candidateGroup.GET("", candidateHandler.List)
			candidateGroup.GET("/skills", candidateHandler.SkillIndex)
			candidateGroup.GET("/skill/:skillName", candidateHandler.BySkill)
			candidateGroup.GET("/skill/:skillName/stats", candidateHandler.SkillStats)
			candidateGroup.GET("/search/skills", candidateHandler.SearchSkills)
			candidateGroup.POST("/filter/by-skills", candidateHandler.FilterBySkills)
			candidateGroup.GET("/search", candidateHandler.Search)

			// 固定技能的快捷分类入口，复用同一套过滤引擎。
			candidateGroup.GET("/iot", candidateHandler.Category("iot", "IoT"))
			candidateGroup.GET("/python", candidateHandler.Category("python", "Python"))
			candidateGroup.GET("/java", candidateHandler.Category("java", "Java"))
			candidateGroup.GET("/embedded", candidateHandler.Category("embedded", "Embedded"))
			candidateGroup.GET("/pcb-design", candidateHandler.Category("pcb design", "PCB Design"))

			candidateGroup.POST("", candidateHandler.Create)
			candidateGroup.GET("/:id", candidateHandler.Get)
			candidateGroup.PUT("/:id", candidateHandler.Update)
			candidateGroup.DELETE("/:id", candidateHandler.Delete)

			candidateGroup.POST("/:id/documents", documentHandler.Upload)
			candidateGroup.GET("/:id/documents", documentHandler.List)
		}

		demandGroup := apiGroup.Group("/demand")
		demandGroup.Use(authMiddleware)
		{
			demandGroup.GET("", demandHandler.List)
			demandGroup.GET("/export/csv", demandHandler.ExportCSV)
			demandGroup.POST("", demandHandler.Create)
			demandGroup.GET("/:id", demandHandler.Get)
			demandGroup.PUT("/:id", demandHandler.Update)
			demandGroup.DELETE("/:id", demandHandler.Delete)
		}

		userGroup := apiGroup.Group("/users")
		userGroup.Use(authMiddleware, middleware.RequireRole("Admin"))
		{
			userGroup.GET("", userHandler.List)
			userGroup.POST("", userHandler.Create)
			userGroup.PUT("/:username", userHandler.UpdateRole)
			userGroup.DELETE("/:username", userHandler.Delete)
		}
	}
}
