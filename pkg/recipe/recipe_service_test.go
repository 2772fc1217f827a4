package recipe

import (
	"context"
	"errors"
	"testing"

	"WasteNot-Backend/domain"
	"WasteNot-Backend/entities"
	"WasteNot-Backend/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCompletion struct {
	response string
	err      error
	prompts  []string
}

func (s *stubCompletion) Complete(_ context.Context, prompt string, _ llm.CompletionOptions) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubRecipeRepository struct {
	saved []*entities.Recipe
}

func (r *stubRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	clone := *recipe
	r.saved = append(r.saved, &clone)
	return nil
}

func (r *stubRecipeRepository) GetRecipesByUser(_ context.Context, userID string) ([]*entities.Recipe, error) {
	var out []*entities.Recipe
	for _, recipe := range r.saved {
		if recipe.UserID.String() == userID {
			out = append(out, recipe)
		}
	}
	return out, nil
}

type stubFoodRepository struct {
	expiring []*entities.FoodItem
}

func (r *stubFoodRepository) AddFoodItem(context.Context, *entities.FoodItem) error { return nil }
func (r *stubFoodRepository) GetFoodItemByID(context.Context, string) (*entities.FoodItem, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubFoodRepository) UpdateFoodItem(context.Context, *entities.FoodItem) error { return nil }
func (r *stubFoodRepository) DeleteFoodItem(context.Context, string) error             { return nil }
func (r *stubFoodRepository) GetFoodItemsByStatus(context.Context, string, string) ([]*entities.FoodItem, error) {
	return nil, nil
}
func (r *stubFoodRepository) GetItemsNeedingAttention(context.Context) ([]*entities.FoodItem, error) {
	return nil, nil
}
func (r *stubFoodRepository) GetSoonestExpiring(context.Context, string, int) ([]*entities.FoodItem, error) {
	return r.expiring, nil
}

func TestGetRecipeSuggestions(t *testing.T) {
	userID := uuid.New()
	foodRepo := &stubFoodRepository{expiring: []*entities.FoodItem{
		{ID: uuid.New(), UserID: userID, Name: "Whole Milk"},
		{ID: uuid.New(), UserID: userID, Name: "Baby Spinach"},
	}}
	recipeRepo := &stubRecipeRepository{}
	completion := &stubCompletion{response: "```json\n" + `{"recipes": [{"title": "Creamed Spinach", "ingredients": ["spinach", "milk", "butter"], "instructions": "Wilt spinach, add milk, reduce.", "prep_time": "10 min", "cook_time": "15 min", "matched_ingredients": ["Whole Milk", "Baby Spinach"]}]}` + "\n```"}

	service := NewRecipeService(recipeRepo, foodRepo, completion)

	resp, err := service.GetRecipeSuggestions(context.Background(), userID.String())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ExpiringItems)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Creamed Spinach", resp.Recipes[0].Title)
	assert.Equal(t, []string{"Whole Milk", "Baby Spinach"}, resp.Recipes[0].MatchedIngredients)

	require.Len(t, recipeRepo.saved, 1)
	assert.True(t, recipeRepo.saved[0].IsGenerated)
	assert.Equal(t, "spinach\nmilk\nbutter", recipeRepo.saved[0].Ingredients)

	require.Len(t, completion.prompts, 1)
	assert.Contains(t, completion.prompts[0], "Whole Milk")
	assert.Contains(t, completion.prompts[0], "Baby Spinach")
}

func TestGetRecipeSuggestionsWithNoItems(t *testing.T) {
	service := NewRecipeService(&stubRecipeRepository{}, &stubFoodRepository{}, &stubCompletion{})

	_, err := service.GetRecipeSuggestions(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
}

func TestGetRecipeSuggestionsPropagatesCompletionError(t *testing.T) {
	foodRepo := &stubFoodRepository{expiring: []*entities.FoodItem{{ID: uuid.New(), Name: "Whole Milk"}}}
	service := NewRecipeService(&stubRecipeRepository{}, foodRepo, &stubCompletion{err: errors.New("rate limited")})

	_, err := service.GetRecipeSuggestions(context.Background(), uuid.New().String())
	assert.Error(t, err)
}

func TestGetSavedRecipes(t *testing.T) {
	userID := uuid.New()
	recipeRepo := &stubRecipeRepository{saved: []*entities.Recipe{{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        "Creamed Spinach",
		Ingredients:  "spinach\nmilk",
		Instructions: "Wilt and simmer.",
		IsGenerated:  true,
	}}}

	service := NewRecipeService(recipeRepo, &stubFoodRepository{}, &stubCompletion{})

	recipes, err := service.GetSavedRecipes(context.Background(), userID.String())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"spinach", "milk"}, recipes[0].Ingredients)

	other, err := service.GetSavedRecipes(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Empty(t, other)
}
