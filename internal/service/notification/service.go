package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/repository"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error

	NotifyDocumentCreated(ctx context.Context, doc *domain.Document, creator *domain.User) error
	NotifyReviewRequested(ctx context.Context, doc *domain.Document, submitter *domain.User) error
	NotifyReviewed(ctx context.Context, doc *domain.Document, status domain.ApprovalStatus) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.ownedBy(ctx, userID, notificationID); err != nil {
		return err
	}
	return s.notifRepo.MarkAsRead(ctx, notificationID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.ownedBy(ctx, userID, notificationID); err != nil {
		return err
	}
	return s.notifRepo.Delete(ctx, notificationID)
}

// ownedBy hides other users' notifications behind not-found.
func (s *service) ownedBy(ctx context.Context, userID, notificationID uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notif == nil || notif.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// NotifyDocumentCreated announces a new document to every active user.
func (s *service) NotifyDocumentCreated(ctx context.Context, doc *domain.Document, creator *domain.User) error {
	users, err := s.userRepo.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipients: %w", err)
	}

	message := fmt.Sprintf("A new bid proposal %q has been created by %s.", doc.Name, creator.FullName)
	return s.fanOut(ctx, users, doc.ID, message)
}

// NotifyReviewRequested targets everyone holding the reviewer role.
func (s *service) NotifyReviewRequested(ctx context.Context, doc *domain.Document, submitter *domain.User) error {
	reviewers, err := s.userRepo.GetByRoles(ctx, []domain.UserRole{domain.RoleReviewer})
	if err != nil {
		return fmt.Errorf("failed to load reviewers: %w", err)
	}

	message := fmt.Sprintf("%s submitted %q for review.", submitter.FullName, doc.Name)
	return s.fanOut(ctx, reviewers, doc.ID, message)
}

// NotifyReviewed reports the resulting approval status to the creator.
func (s *service) NotifyReviewed(ctx context.Context, doc *domain.Document, status domain.ApprovalStatus) error {
	notif := &domain.Notification{
		ID:         uuid.New(),
		UserID:     doc.CreatorID,
		DocumentID: doc.ID,
		Message:    fmt.Sprintf("Your proposal %q has been reviewed: status is now %s.", doc.Name, status),
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *service) fanOut(ctx context.Context, users []domain.User, documentID uuid.UUID, message string) error {
	notifs := make([]domain.Notification, 0, len(users))
	for _, user := range users {
		notifs = append(notifs, domain.Notification{
			ID:         uuid.New(),
			UserID:     user.ID,
			DocumentID: documentID,
			Message:    message,
		})
	}

	if err := s.notifRepo.CreateBatch(ctx, notifs); err != nil {
		log.Printf("failed to create notifications for document %s: %v", documentID, err)
		return err
	}
	return nil
}
