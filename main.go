package main

import (
	"Squadup/config"
	pgconfig "Squadup/config/postgres"
	_ "Squadup/config/swagger"
	"Squadup/logging"
	"Squadup/middleware"
	"Squadup/routes"
	"Squadup/services/redis"
	"Squadup/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Squadup API
// @version 1.0
// @description Player matching API for the Squadup e-sports platform
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// .env is optional, the real environment wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}
	logCfg := logging.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		logCfg.Format = cfg.LogFormat
	}
	logging.Init(logCfg)
	logging.Info().Msg("Setting up server...")

	if cfg.Prod {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := pgconfig.ConnectGORM(cfg.Postgres)
	if err != nil {
		logging.Fatal().Err(err).Msg("Error connecting to PostgreSQL")
	}

	// Only migrate in development or during deployment
	if cfg.Migrate {
		logging.Info().Msg("Migrating PostgreSQL database...")
		if err := pgconfig.MigrateDatabase(gormDB); err != nil {
			logging.Fatal().Err(err).Msg("Database migration failed")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logging.Fatal().Err(err).Msg("Error reading GORM PostgreSQL instance")
	}
	defer sqlDB.Close()

	// Matching keeps working without Redis, only the search limiter is lost
	redisClient, err := config.ConnectRedis(cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("Redis unavailable, match search limiting disabled")
		redisClient = nil
	}
	defer redis.CloseRedis(redisClient)

	r := gin.New()
	r.Use(gin.Recovery(), utils.RequestID(), utils.Logger())

	middleware.SetUpMiddleware(r, cfg.CORSOrigins)

	routes.SetupRoutes(r, cfg, gormDB, redisClient)

	logging.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logging.Fatal().Err(err).Msg("Error starting server")
	}
}
