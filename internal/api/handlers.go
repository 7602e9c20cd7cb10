package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodmagic/backend/internal/types"
)

// Welcome returns the fixed greeting served at the root path
func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Welcome to the FoodMagic API"})
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{Status: "healthy"})
}
