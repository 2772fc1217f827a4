package recipe

import (
	"context"
	"fmt"
	"log"
	"strings"

	"WasteNot-Backend/domain"
	"WasteNot-Backend/entities"
	"WasteNot-Backend/internal/utils/jsonx"
	"WasteNot-Backend/pkg/food"
	"WasteNot-Backend/pkg/llm"

	"github.com/google/uuid"
)

// Cap on how many expiring items are handed to the model per request.
const maxSuggestionItems = 10

type (
	RecipeService interface {
		GetRecipeSuggestions(ctx context.Context, userID string) (domain.RecipeSuggestionResponse, error)
		GetSavedRecipes(ctx context.Context, userID string) ([]domain.Recipe, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		foodRepository   food.FoodRepository
		completion       llm.CompletionService
	}
)

func NewRecipeService(recipeRepository RecipeRepository, foodRepository food.FoodRepository, completion llm.CompletionService) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		foodRepository:   foodRepository,
		completion:       completion,
	}
}

func (s *recipeService) GetRecipeSuggestions(ctx context.Context, userID string) (domain.RecipeSuggestionResponse, error) {
	items, err := s.foodRepository.GetSoonestExpiring(ctx, userID, maxSuggestionItems)
	if err != nil {
		return domain.RecipeSuggestionResponse{}, err
	}
	if len(items) == 0 {
		return domain.RecipeSuggestionResponse{}, domain.ErrNoIngredients
	}

	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		ingredients = append(ingredients, item.Name)
	}

	raw, err := s.completion.Complete(ctx, buildSuggestionPrompt(ingredients), llm.CompletionOptions{
		Temperature:     0.7,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		return domain.RecipeSuggestionResponse{}, err
	}

	var parsed struct {
		Recipes []struct {
			Title              string   `json:"title"`
			Ingredients        []string `json:"ingredients"`
			Instructions       string   `json:"instructions"`
			PrepTime           string   `json:"prep_time"`
			CookTime           string   `json:"cook_time"`
			MatchedIngredients []string `json:"matched_ingredients"`
		} `json:"recipes"`
	}
	if err := jsonx.Extract(raw, &parsed); err != nil {
		return domain.RecipeSuggestionResponse{}, fmt.Errorf("parsing recipe suggestions: %w", err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeSuggestionResponse{}, domain.ErrParseUUID
	}

	response := domain.RecipeSuggestionResponse{ExpiringItems: len(items)}
	for _, r := range parsed.Recipes {
		if r.Title == "" {
			continue
		}

		entity := &entities.Recipe{
			ID:                 uuid.New(),
			UserID:             userUUID,
			Title:              r.Title,
			Ingredients:        strings.Join(r.Ingredients, "\n"),
			Instructions:       r.Instructions,
			PrepTime:           r.PrepTime,
			CookTime:           r.CookTime,
			MatchedIngredients: strings.Join(r.MatchedIngredients, "\n"),
			IsGenerated:        true,
		}
		if err := s.recipeRepository.CreateRecipe(ctx, entity); err != nil {
			log.Printf("failed to save generated recipe %q: %v", r.Title, err)
		}

		response.Recipes = append(response.Recipes, domain.Recipe{
			ID:                 entity.ID.String(),
			Title:              r.Title,
			Ingredients:        r.Ingredients,
			Instructions:       r.Instructions,
			PrepTime:           r.PrepTime,
			CookTime:           r.CookTime,
			MatchedIngredients: r.MatchedIngredients,
		})
	}

	return response, nil
}

func (s *recipeService) GetSavedRecipes(ctx context.Context, userID string) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		response = append(response, domain.Recipe{
			ID:                 r.ID.String(),
			Title:              r.Title,
			Ingredients:        splitLines(r.Ingredients),
			Instructions:       r.Instructions,
			PrepTime:           r.PrepTime,
			CookTime:           r.CookTime,
			MatchedIngredients: splitLines(r.MatchedIngredients),
		})
	}

	return response, nil
}

func buildSuggestionPrompt(ingredients []string) string {
	var b strings.Builder

	b.WriteString("You are a cooking assistant helping reduce household food waste.\n")
	b.WriteString("Suggest up to 3 recipes that use as many of these soon-to-expire ingredients as possible:\n")
	for _, name := range ingredients {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("\nRespond ONLY with a JSON object of this exact shape, no markdown or extra text:\n")
	b.WriteString(`{"recipes": [{"title": "...", "ingredients": ["..."], "instructions": "...", "prep_time": "...", "cook_time": "...", "matched_ingredients": ["..."]}]}`)

	return b.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
