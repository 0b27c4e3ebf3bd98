package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/middleware"
	"bidproposal-backend/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	u, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": u})
}

func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.UserID == uuid.Nil {
		return middleware.BadRequest("user_id is required")
	}

	u, err := h.userService.AssignRole(c.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		if errors.Is(err, user.ErrInvalidRole) {
			return middleware.BadRequest("Invalid role")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": u})
}
