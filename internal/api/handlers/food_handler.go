package handlers

import (
	"WasteNot-Backend/domain"
	"WasteNot-Backend/internal/api/presenters"
	"WasteNot-Backend/pkg/food"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		AddFoodItem(c *fiber.Ctx) error
		UpdateFoodItem(c *fiber.Ctx) error
		UpdateFoodItemStatus(c *fiber.Ctx) error
		RestoreFoodItem(c *fiber.Ctx) error
		GetFoodItems(c *fiber.Ctx) error
		GetFoodItemDetails(c *fiber.Ctx) error
		PermanentlyDeleteFoodItem(c *fiber.Ctx) error
		ComputeFreshness(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func (h *foodHandler) AddFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddFoodItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodItem, err)
	}

	res, err := h.foodService.AddFoodItem(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFoodItem)
}

func (h *foodHandler) UpdateFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")
	req := new(domain.UpdateFoodItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItem, err)
	}

	res, err := h.foodService.UpdateFoodItem(c.Context(), itemID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForFoodError(err), domain.MessageFailedUpdateFoodItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFoodItem)
}

func (h *foodHandler) UpdateFoodItemStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")
	req := new(domain.UpdateFoodItemStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	res, err := h.foodService.UpdateFoodItemStatus(c.Context(), itemID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForFoodError(err), domain.MessageFailedUpdateStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateStatus)
}

func (h *foodHandler) RestoreFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	res, err := h.foodService.RestoreFoodItem(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForFoodError(err), domain.MessageFailedRestoreFoodItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRestoreFoodItem)
}

func (h *foodHandler) GetFoodItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "")

	items, err := h.foodService.GetFoodItems(c.Context(), userID, status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) GetFoodItemDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	item, err := h.foodService.GetFoodItemByID(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForFoodError(err), domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) PermanentlyDeleteFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	if err := h.foodService.PermanentlyDeleteFoodItem(c.Context(), itemID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForFoodError(err), domain.MessageFailedPermanentlyDeleting, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodItem)
}

func (h *foodHandler) ComputeFreshness(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	res, err := h.foodService.ComputeFreshness(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForFoodError(err), domain.MessageFailedComputeFreshness, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessComputeFreshness)
}

func statusForFoodError(err error) int {
	switch err {
	case domain.ErrFoodItemNotFound:
		return fiber.StatusNotFound
	case domain.ErrUnauthorizedAccess:
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
