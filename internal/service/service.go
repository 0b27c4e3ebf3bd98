package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"bidproposal-backend/internal/config"
	"bidproposal-backend/internal/repository"
	"bidproposal-backend/internal/service/approval"
	"bidproposal-backend/internal/service/artifact"
	"bidproposal-backend/internal/service/auth"
	"bidproposal-backend/internal/service/document"
	"bidproposal-backend/internal/service/email"
	"bidproposal-backend/internal/service/generation"
	"bidproposal-backend/internal/service/notification"
	"bidproposal-backend/internal/service/user"
	"bidproposal-backend/internal/service/version"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Document     document.Service
	Version      version.Service
	Approval     approval.Service
	Generation   generation.Service
	Artifact     artifact.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	userService := user.NewService(repos.User)

	generationService := generation.NewService(cfg)
	artifactService := artifact.NewService(minioClient, cfg)
	versionService := version.NewService(repos.Document, artifactService, generationService, redis)
	notificationService := notification.NewService(repos.Notification, repos.User)

	approvalService := approval.NewService(
		repos.Approval,
		repos.Document,
		repos.Review,
		repos.User,
		notificationService,
		emailService,
		cfg.ApprovalQuorum,
	)

	documentService := document.NewService(
		repos.Document,
		repos.Review,
		generationService,
		artifactService,
		versionService,
		approvalService,
	)

	return &Services{
		Auth:         authService,
		User:         userService,
		Document:     documentService,
		Version:      versionService,
		Approval:     approvalService,
		Generation:   generationService,
		Artifact:     artifactService,
		Notification: notificationService,
		Email:        emailService,
	}
}
