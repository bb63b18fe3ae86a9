package api

import (
	"github.com/f57725199-cmyk/stuadm/config"
	_ "github.com/f57725199-cmyk/stuadm/docs"
	adminContent "github.com/f57725199-cmyk/stuadm/internal/api/v1/admin/content"
	adminMonitor "github.com/f57725199-cmyk/stuadm/internal/api/v1/admin/monitor"
	adminSettings "github.com/f57725199-cmyk/stuadm/internal/api/v1/admin/settings"
	adminTransaction "github.com/f57725199-cmyk/stuadm/internal/api/v1/admin/transaction"
	adminUser "github.com/f57725199-cmyk/stuadm/internal/api/v1/admin/user"
	"github.com/f57725199-cmyk/stuadm/internal/api/v1/auth"
	"github.com/f57725199-cmyk/stuadm/internal/api/v1/chapters"
	contentRoutes "github.com/f57725199-cmyk/stuadm/internal/api/v1/content"
	userRoutes "github.com/f57725199-cmyk/stuadm/internal/api/v1/user"
	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			contentRoutes.RegisterRoutes(authorized)
			chapters.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminUser.RegisterRoutes(admin)
			adminTransaction.RegisterRoutes(admin)
			adminSettings.RegisterRoutes(admin)
			adminMonitor.RegisterRoutes(admin)
			adminContent.RegisterRoutes(admin)
			chapters.RegisterAdminRoutes(admin)
		}
	}

	return router, nil
}
