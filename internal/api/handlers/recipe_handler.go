package handlers

import (
	"WasteNot-Backend/domain"
	"WasteNot-Backend/internal/api/presenters"
	"WasteNot-Backend/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipeSuggestions(c *fiber.Ctx) error
		GetSavedRecipes(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{recipeService: recipeService}
}

func (h *recipeHandler) GetRecipeSuggestions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetRecipeSuggestions(c.Context(), userID)
	if err != nil {
		if err == domain.ErrNoIngredients {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipes, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetSavedRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	recipes, err := h.recipeService.GetSavedRecipes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetSavedRecipes, err)
	}

	return presenters.SuccessResponse(c, recipes, fiber.StatusOK, domain.MessageSuccessGetSavedRecipes)
}
