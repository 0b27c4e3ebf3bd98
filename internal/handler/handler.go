package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Document     *DocumentHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Document:     NewDocumentHandler(services.Document, services.Approval),
		Notification: NewNotificationHandler(services.Notification),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	params := domain.PaginationParams{Page: page, PageSize: pageSize}
	params.Validate()
	return params
}
