package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodmagic/backend/config"
	"github.com/foodmagic/backend/internal/service"
	"github.com/foodmagic/backend/internal/types"
)

const (
	// imageField is the multipart field holding the photo
	imageField = "file"

	// recipeFailureMessage is returned for every recipe failure, whatever its cause
	recipeFailureMessage = "No se pudo decodificar la respuesta del modelo."
)

// FoodHandler serves the ingredient and recipe endpoints
type FoodHandler struct {
	ingredientService service.IIngredientService
	recipeService     service.IRecipeService
	errorMode         config.ErrorMode
	log               *zap.Logger
}

// NewFoodHandler creates a new FoodHandler instance
func NewFoodHandler(ingredientService service.IIngredientService, recipeService service.IRecipeService, errorMode config.ErrorMode, log *zap.Logger) *FoodHandler {
	return &FoodHandler{
		ingredientService: ingredientService,
		recipeService:     recipeService,
		errorMode:         errorMode,
		log:               log,
	}
}

// RegisterRoutes registers the food routes
func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/process-image/", h.ProcessImage)
	router.POST("/suggest-recipes/", h.SuggestRecipes)
}

// ProcessImage handles a photo upload and returns the detected ingredients as a JSON string
func (h *FoodHandler) ProcessImage(c *gin.Context) {
	fileHeader, err := c.FormFile(imageField)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{Error: fmt.Sprintf("missing %q file field: %v", imageField, err)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %w", service.ErrReadPayload, err), err.Error())
		return
	}
	defer file.Close()

	payload, err := service.ReadImagePayload(file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.fail(c, err, err.Error())
		return
	}

	ingredients, err := h.ingredientService.ExtractIngredients(c.Request.Context(), payload)
	if err != nil {
		h.fail(c, err, err.Error())
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// SuggestRecipes handles a JSON array of ingredient names and returns recipe suggestions
func (h *FoodHandler) SuggestRecipes(c *gin.Context) {
	var ingredients []string
	if err := c.ShouldBindJSON(&ingredients); err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{Error: "body must be a JSON array of strings: " + err.Error()})
		return
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	recipes, err := h.recipeService.SuggestRecipes(c.Request.Context(), ingredients)
	if err != nil {
		h.fail(c, err, recipeFailureMessage)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// fail writes the {"error": ...} body. In legacy mode the status is always 200
// because existing clients only look at the body shape.
func (h *FoodHandler) fail(c *gin.Context, err error, message string) {
	_ = c.Error(err)

	status := http.StatusOK
	if h.errorMode == config.ErrorModeStatus {
		status = StatusFor(err)
	}

	h.log.Warn("request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err))

	c.JSON(status, types.ErrorResponse{Error: message})
}

// StatusFor maps a service error onto an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrReadPayload):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDecodeResponse), errors.Is(err, service.ErrModelRequest):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
