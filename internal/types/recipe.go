package types

// Keys the recipe prompt asks the model to fill in. The mobile client reads
// these names.
const (
	RecipeKeyName        = "nombre"
	RecipeKeyDescription = "descripcion"
	RecipeKeyIngredients = "ingredientes"
	RecipeKeySteps       = "pasos"
)

// RecipeSuggestion is one recipe object proposed by the model, kept as decoded.
// Values are not checked against any shape, and keys outside the four above
// pass through untouched.
type RecipeSuggestion map[string]any

// WithDefaults fills in any of the four recipe keys the model left out: an
// empty string for the text keys and an empty list for the list keys.
// Present values are never replaced.
func (r RecipeSuggestion) WithDefaults() RecipeSuggestion {
	defaults := map[string]any{
		RecipeKeyName:        "",
		RecipeKeyDescription: "",
		RecipeKeyIngredients: []any{},
		RecipeKeySteps:       []any{},
	}
	for key, value := range defaults {
		if _, ok := r[key]; !ok {
			r[key] = value
		}
	}
	return r
}
