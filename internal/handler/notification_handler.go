package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/middleware"
	"bidproposal-backend/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	unreadOnly := c.Query("unread_only") == "true"
	params := getPaginationParams(c)

	result, err := h.notifService.List(c.Context(), userID, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.MarkAsRead(c.Context(), userID, notifID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.notifService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.Delete(c.Context(), userID, notifID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
