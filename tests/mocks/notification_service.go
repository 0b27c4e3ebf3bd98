package mocks

import (
	"context"

	"bidproposal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *NotificationService) NotifyDocumentCreated(ctx context.Context, doc *domain.Document, creator *domain.User) error {
	args := m.Called(ctx, doc, creator)
	return args.Error(0)
}

func (m *NotificationService) NotifyReviewRequested(ctx context.Context, doc *domain.Document, submitter *domain.User) error {
	args := m.Called(ctx, doc, submitter)
	return args.Error(0)
}

func (m *NotificationService) NotifyReviewed(ctx context.Context, doc *domain.Document, status domain.ApprovalStatus) error {
	args := m.Called(ctx, doc, status)
	return args.Error(0)
}
