package domain

import "errors"

var (
	MessageSuccessGetRecipes      = "recipe suggestions generated successfully"
	MessageSuccessGetSavedRecipes = "saved recipes retrieved successfully"
	MessageFailedGetRecipes       = "failed to generate recipe suggestions"
	MessageFailedGetSavedRecipes  = "failed to retrieve saved recipes"

	ErrNoIngredients  = errors.New("no active food items to build recipes from")
	ErrRecipeNotFound = errors.New("recipe not found")
)

type (
	Recipe struct {
		ID                 string   `json:"id"`
		Title              string   `json:"title"`
		Ingredients        []string `json:"ingredients"`
		Instructions       string   `json:"instructions"`
		PrepTime           string   `json:"prep_time"`
		CookTime           string   `json:"cook_time"`
		MatchedIngredients []string `json:"matched_ingredients"`
	}

	RecipeSuggestionResponse struct {
		Recipes       []Recipe `json:"recipes"`
		ExpiringItems int      `json:"expiring_items"`
	}
)
