package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/foodmagic/backend/internal/types"
)

// recipePromptTemplate is filled with the comma-joined ingredient list. The
// embedded example fixes the keys ParseRecipes expects.
const recipePromptTemplate = `Actúa como un chef peruano experto. A partir de los siguientes ingredientes: %s, genera recetas típicas peruanas que puedan prepararse con esos ingredientes o algunos adicionales comunes en casa.

Devuelve la respuesta **exclusivamente** en formato JSON como este ejemplo (no escribas nada fuera del JSON):

[
  {
    "nombre": "Ají de gallina",
    "descripcion": "Plato típico limeño a base de pollo y ají amarillo.",
    "ingredientes": [
      "🐔 pollo desmenuzado",
      "🌶️ ají amarillo",
      "🥛 leche evaporada",
      "🥖 pan",
      "🧅 cebolla"
    ],
    "pasos": [
      "1. Remoja el pan en leche evaporada.",
      "2. Licúa con ají amarillo y cebolla.",
      "3. Cocina el pollo con la mezcla por 15 minutos."
    ]
  }
]
`

// RecipeService generates recipe suggestions from a list of ingredients
type RecipeService struct {
	client      ChatClient
	model       string
	temperature float64
	maxTokens   int
	log         *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(client ChatClient, model string, temperature float64, maxTokens int, log *zap.Logger) *RecipeService {
	return &RecipeService{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		log:         log,
	}
}

// BuildRecipePrompt embeds every ingredient, in order, into the few-shot prompt
func BuildRecipePrompt(ingredients []string) string {
	return fmt.Sprintf(recipePromptTemplate, strings.Join(ingredients, ", "))
}

// BuildRecipeRequest builds the text-only request for an ingredient list
func (s *RecipeService) BuildRecipeRequest(ingredients []string) ChatRequest {
	temperature := s.temperature
	return ChatRequest{
		Model:       s.model,
		Messages:    []Message{{Role: RoleUser, Content: BuildRecipePrompt(ingredients)}},
		Temperature: &temperature,
		MaxTokens:   s.maxTokens,
	}
}

// SuggestRecipes asks the model for recipes and parses its reply
func (s *RecipeService) SuggestRecipes(ctx context.Context, ingredients []string) ([]types.RecipeSuggestion, error) {
	s.log.Info("suggesting recipes", zap.Strings("ingredients", ingredients))

	raw, err := s.client.CreateChatCompletion(ctx, s.BuildRecipeRequest(ingredients))
	if err != nil {
		s.log.Error("recipe generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrModelRequest, err)
	}

	raw = strings.TrimSpace(raw)
	s.log.Debug("raw model response", zap.String("response", raw))

	recipes, err := ParseRecipes(raw)
	if err != nil {
		s.log.Error("failed to parse recipes", zap.Error(err))
		return nil, err
	}

	return recipes, nil
}

// ExtractJSONArray returns the text from the first '[' through the last ']'.
// Models often wrap the array in prose despite being told not to.
func ExtractJSONArray(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return "", ErrNoJSONArray
	}
	return raw[start : end+1], nil
}

// ParseRecipes extracts the bracketed region of raw and decodes it as an
// array of recipe objects. Values are passed through as the model wrote them;
// only the four recipe keys are added when missing.
func ParseRecipes(raw string) ([]types.RecipeSuggestion, error) {
	region, err := ExtractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(region), &elems); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	recipes := make([]types.RecipeSuggestion, 0, len(elems))
	for i, elem := range elems {
		// null would otherwise decode into a nil map without error
		if !bytes.HasPrefix(bytes.TrimSpace(elem), []byte("{")) {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrDecodeResponse, i)
		}

		dec := json.NewDecoder(bytes.NewReader(elem))
		dec.UseNumber()
		var recipe types.RecipeSuggestion
		if err := dec.Decode(&recipe); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrDecodeResponse, i, err)
		}
		recipes = append(recipes, recipe.WithDefaults())
	}

	return recipes, nil
}
