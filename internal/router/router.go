package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodmagic/backend/internal/api"
	"github.com/foodmagic/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(foodHandler *api.FoodHandler, log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS())
	router.Use(middleware.Recovery(log))

	router.GET("/", api.Welcome)
	router.GET("/health", api.HealthCheck)

	foodHandler.RegisterRoutes(router.Group("/api"))

	return router
}
