package routes

import (
	"Squadup/config"
	"Squadup/controllers"
	"Squadup/middleware"
	"Squadup/services/matching"
	"Squadup/services/redis"
	utils "Squadup/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes. redisClient may be nil, which turns
// the match search limiter off.
func SetupRoutes(router *gin.Engine, cfg *config.AppConfig, db *gorm.DB, redisClient *redis.RedisClient) {
	matchController := &controllers.MatchController{
		Service:      matching.NewService(db),
		SearchLimit:  cfg.MatchSearchLimit,
		SearchWindow: cfg.MatchSearchWindow,
	}
	if redisClient != nil {
		matchController.Limiter = redisClient
	}

	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	matches := api.Group("/matches")
	matches.Use(middleware.AuthRequired([]byte(cfg.JWTSecret)))
	{
		matches.POST("", matchController.FindMatches)

		matches.GET("", matchController.GetMatches)

		matches.POST("/:match_id/accept", matchController.AcceptMatch)

		matches.POST("/:match_id/reject", matchController.RejectMatch)
	}
}
