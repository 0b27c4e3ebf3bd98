package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"bidproposal-backend/internal/config"
	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/handler"
	"bidproposal-backend/internal/middleware"
	"bidproposal-backend/internal/repository"
	"bidproposal-backend/internal/service"
	"bidproposal-backend/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	documents := protected.Group("/documents")
	documents.Post("/", middleware.RequireAnyRole(domain.RoleCreator, domain.RoleAdmin), h.Document.Create)
	documents.Post("/from-rfq", middleware.RequireAnyRole(domain.RoleCreator, domain.RoleAdmin), h.Document.CreateFromRFQ)
	documents.Post("/update-section", middleware.RequireAnyRole(domain.RoleCreator, domain.RoleAdmin), h.Document.UpdateSection)
	documents.Get("/", h.Document.List)
	documents.Get("/:id", h.Document.Get)
	documents.Post("/:id/submit", h.Document.Submit)
	documents.Post("/:id/review", middleware.RequireAnyRole(domain.RoleReviewer, domain.RoleAdmin), h.Document.Review)
	documents.Get("/:id/approval", h.Document.GetApproval)
	documents.Get("/:id/reviews", h.Document.ListReviews)
	documents.Get("/:id/versions/:number", h.Document.GetVersion)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	users := protected.Group("/users")
	users.Get("/me", h.Auth.Me)
	users.Get("/", middleware.RequireRole(domain.RoleAdmin), h.User.List)
	users.Post("/assign-role", middleware.RequireRole(domain.RoleAdmin), h.User.AssignRole)
	users.Get("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.Get)
}
