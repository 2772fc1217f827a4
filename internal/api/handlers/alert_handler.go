package handlers

import (
	"WasteNot-Backend/domain"
	"WasteNot-Backend/internal/api/presenters"
	"WasteNot-Backend/pkg/alert"

	"github.com/gofiber/fiber/v2"
)

type (
	AlertHandler interface {
		GenerateAlerts(c *fiber.Ctx) error
		GetAlerts(c *fiber.Ctx) error
		MarkAlertRead(c *fiber.Ctx) error
		ClearAllAlerts(c *fiber.Ctx) error
	}

	alertHandler struct {
		alertService alert.AlertService
	}
)

func NewAlertHandler(alertService alert.AlertService) AlertHandler {
	return &alertHandler{alertService: alertService}
}

func (h *alertHandler) GenerateAlerts(c *fiber.Ctx) error {
	summary, err := h.alertService.GenerateAlerts(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGenerateAlerts, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGenerateAlerts)
}

func (h *alertHandler) GetAlerts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	alerts, err := h.alertService.GetAlerts(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAlerts, err)
	}

	return presenters.SuccessResponse(c, alerts, fiber.StatusOK, domain.MessageSuccessGetAlerts)
}

func (h *alertHandler) MarkAlertRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	alertID := c.Params("id")

	if err := h.alertService.MarkAlertRead(c.Context(), alertID, userID); err != nil {
		status := fiber.StatusBadRequest
		switch err {
		case domain.ErrAlertNotFound:
			status = fiber.StatusNotFound
		case domain.ErrUnauthorizedAccess:
			status = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedMarkAlertRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAlertRead)
}

func (h *alertHandler) ClearAllAlerts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.alertService.ClearAllAlerts(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedClearAlerts, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClearAlerts)
}
