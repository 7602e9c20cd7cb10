package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodmagic/backend/config"
	"github.com/foodmagic/backend/internal/api"
	"github.com/foodmagic/backend/internal/logger"
	"github.com/foodmagic/backend/internal/router"
	"github.com/foodmagic/backend/internal/server"
	"github.com/foodmagic/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = appLog.Sync() }()

	if !cfg.Environment.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// One client for the whole process, shared by both services
	client := service.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.OpenAITimeout, appLog.Named("openai"))
	ingredientService := service.NewIngredientService(client, cfg.VisionModel, cfg.VisionMaxTokens, appLog.Named("ingredients"))
	recipeService := service.NewRecipeService(client, cfg.RecipeModel, cfg.RecipeTemperature, cfg.RecipeMaxTokens, appLog.Named("recipes"))

	foodHandler := api.NewFoodHandler(ingredientService, recipeService, cfg.ErrorMode, appLog.Named("api"))
	srv := server.New(cfg, router.SetupRouter(foodHandler, appLog.Named("http")), appLog)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			appLog.Fatal("Server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		appLog.Info("Received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Fatal("Server shutdown error", zap.Error(err))
	}
	appLog.Info("Server stopped",
		zap.String("vision_model", cfg.VisionModel),
		zap.String("recipe_model", cfg.RecipeModel))
}
