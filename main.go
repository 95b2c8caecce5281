package main

import (
	"log"

	"recipe-manager-api/config"
	"recipe-manager-api/handlers"
	"recipe-manager-api/logger"
	"recipe-manager-api/middleware"
	"recipe-manager-api/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zl := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg.Database.Path, zl)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}

	auth := middleware.NewAuth(cfg.JWT.Secret, cfg.JWT.Expiration)
	r := routes.NewRouter(routes.Deps{
		Handler:     handlers.New(db, auth),
		Auth:        auth,
		Metrics:     middleware.NewMetrics(),
		Logger:      zl,
		CORSOrigins: cfg.HTTP.CORSAllowOrigins,
	})

	zl.Info("server starting", zap.String("addr", ":"+cfg.App.Port), zap.Stringer("config", cfg))
	if err := r.Run(":" + cfg.App.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
