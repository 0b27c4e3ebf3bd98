package unit_test

import (
	"context"
	"testing"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/service/notification"
	"bidproposal-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationService_Ownership(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	notifID := uuid.New()

	t.Run("MarkAsRead Owned", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		svc := notification.NewService(mockNotifRepo, mockUserRepo)

		mockNotifRepo.On("GetByID", ctx, notifID).
			Return(&domain.Notification{ID: notifID, UserID: userID}, nil).Once()
		mockNotifRepo.On("MarkAsRead", ctx, notifID).Return(nil).Once()

		err := svc.MarkAsRead(ctx, userID, notifID)

		assert.NoError(t, err)
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("MarkAsRead Foreign Notification Hidden", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		svc := notification.NewService(mockNotifRepo, mockUserRepo)

		mockNotifRepo.On("GetByID", ctx, notifID).
			Return(&domain.Notification{ID: notifID, UserID: uuid.New()}, nil).Once()

		err := svc.MarkAsRead(ctx, userID, notifID)

		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
		mockNotifRepo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
	})

	t.Run("Delete Missing Notification", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		svc := notification.NewService(mockNotifRepo, mockUserRepo)

		mockNotifRepo.On("GetByID", ctx, notifID).Return(nil, nil).Once()

		err := svc.Delete(ctx, userID, notifID)

		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	})
}

func TestNotificationService_FanOut(t *testing.T) {
	ctx := context.Background()

	doc := &domain.Document{ID: uuid.New(), Name: "Harbor Expansion", CreatorID: uuid.New()}

	t.Run("Review Request Targets Reviewers", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		svc := notification.NewService(mockNotifRepo, mockUserRepo)

		reviewers := []domain.User{
			{ID: uuid.New(), Role: string(domain.RoleReviewer)},
			{ID: uuid.New(), Role: string(domain.RoleReviewer)},
		}
		submitter := &domain.User{ID: doc.CreatorID, FullName: "Cory Creator"}

		mockUserRepo.On("GetByRoles", ctx, []domain.UserRole{domain.RoleReviewer}).
			Return(reviewers, nil).Once()
		mockNotifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			if len(notifs) != 2 {
				return false
			}
			return notifs[0].UserID == reviewers[0].ID && notifs[1].UserID == reviewers[1].ID
		})).Return(nil).Once()

		err := svc.NotifyReviewRequested(ctx, doc, submitter)

		assert.NoError(t, err)
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Review Result Targets Creator", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		svc := notification.NewService(mockNotifRepo, mockUserRepo)

		mockNotifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == doc.CreatorID && n.DocumentID == doc.ID
		})).Return(nil).Once()

		err := svc.NotifyReviewed(ctx, doc, domain.ApprovalApproved)

		assert.NoError(t, err)
		mockNotifRepo.AssertExpectations(t)
	})
}
