package service

import (
	"context"

	"github.com/foodmagic/backend/internal/types"
)

// ChatClient sends a single chat-completion request and returns the text of the first choice
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}

// IIngredientService defines the interface for extracting ingredients from a photo
type IIngredientService interface {
	ExtractIngredients(ctx context.Context, payload *types.ImagePayload) (string, error)
}

// IRecipeService defines the interface for recipe suggestions
type IRecipeService interface {
	SuggestRecipes(ctx context.Context, ingredients []string) ([]types.RecipeSuggestion, error)
}
