package unit_test

import (
	"context"
	"errors"
	"testing"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/service/approval"
	"bidproposal-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type approvalFixture struct {
	apprRepo   *mocks.ApprovalRepository
	docRepo    *mocks.DocumentRepository
	reviewRepo *mocks.ReviewRepository
	userRepo   *mocks.UserRepository
	notifSvc   *mocks.NotificationService
	emailSvc   *mocks.EmailService
	svc        approval.Service
}

func newApprovalFixture(quorum int) *approvalFixture {
	f := &approvalFixture{
		apprRepo:   new(mocks.ApprovalRepository),
		docRepo:    new(mocks.DocumentRepository),
		reviewRepo: new(mocks.ReviewRepository),
		userRepo:   new(mocks.UserRepository),
		notifSvc:   new(mocks.NotificationService),
		emailSvc:   new(mocks.EmailService),
	}
	f.svc = approval.NewService(f.apprRepo, f.docRepo, f.reviewRepo, f.userRepo, f.notifSvc, f.emailSvc, quorum)

	// Side effects run on background goroutines and are not part of the
	// assertions here.
	f.notifSvc.On("NotifyDocumentCreated", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.notifSvc.On("NotifyReviewRequested", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.notifSvc.On("NotifyReviewed", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.userRepo.On("GetByRoles", mock.Anything, mock.Anything).Return([]domain.User{}, nil).Maybe()
	f.userRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.emailSvc.On("SendReviewRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.emailSvc.On("SendReviewResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return f
}

func reviewer() *domain.User {
	return &domain.User{ID: uuid.New(), Role: string(domain.RoleReviewer), FullName: "Rin Reviewer"}
}

func TestApprovalService_Create(t *testing.T) {
	ctx := context.Background()
	f := newApprovalFixture(2)

	doc := &domain.Document{ID: uuid.New(), Name: "Harbor Expansion"}
	creator := &domain.User{ID: uuid.New(), Role: string(domain.RoleCreator)}

	f.apprRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Approval) bool {
		return a.DocumentID == doc.ID && a.Status == domain.ApprovalDraft && len(a.Approvers) == 0
	})).Return(nil).Once()

	appr, err := f.svc.Create(ctx, doc, creator)

	assert.NoError(t, err)
	assert.Equal(t, domain.ApprovalDraft, appr.Status)
	f.apprRepo.AssertExpectations(t)
}

func TestApprovalService_Submit(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()
	creatorID := uuid.New()

	draft := func() (*domain.Document, *domain.Approval) {
		doc := &domain.Document{ID: docID, CreatorID: creatorID, CurrentStatus: domain.DocStatusDraft}
		appr := &domain.Approval{ID: uuid.New(), DocumentID: docID, Status: domain.ApprovalDraft, Revision: 0}
		return doc, appr
	}

	t.Run("Creator Submits Draft", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := draft()

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()
		f.apprRepo.On("Transition", ctx, appr.ID, domain.ApprovalPending, 0, docID, domain.DocStatusSubmitted).Return(nil).Once()

		got, err := f.svc.Submit(ctx, docID, &domain.User{ID: creatorID, Role: string(domain.RoleCreator)})

		assert.NoError(t, err)
		assert.Equal(t, domain.ApprovalPending, got.Status)
		assert.Equal(t, domain.DocStatusSubmitted, doc.CurrentStatus)
		f.apprRepo.AssertExpectations(t)
		f.docRepo.AssertExpectations(t)
	})

	t.Run("Write Failure Leaves Both Statuses Untouched", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := draft()

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()
		f.apprRepo.On("Transition", ctx, appr.ID, domain.ApprovalPending, 0, docID, domain.DocStatusSubmitted).
			Return(errors.New("connection lost")).Once()

		_, err := f.svc.Submit(ctx, docID, &domain.User{ID: creatorID, Role: string(domain.RoleCreator)})

		assert.Error(t, err)
		assert.Equal(t, domain.ApprovalDraft, appr.Status)
		assert.Equal(t, domain.DocStatusDraft, doc.CurrentStatus)
	})

	t.Run("Non-Creator Denied", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := draft()

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()

		_, err := f.svc.Submit(ctx, docID, reviewer())

		assert.ErrorIs(t, err, approval.ErrNotAllowed)
	})

	t.Run("Finalized Document Cannot Be Resubmitted", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := draft()
		appr.Status = domain.ApprovalRejected

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()

		_, err := f.svc.Submit(ctx, docID, &domain.User{ID: creatorID, Role: string(domain.RoleCreator)})

		assert.ErrorIs(t, err, approval.ErrAlreadyFinalized)
	})

	t.Run("Double Submit Rejected", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := draft()
		appr.Status = domain.ApprovalPending

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()

		_, err := f.svc.Submit(ctx, docID, &domain.User{ID: creatorID, Role: string(domain.RoleCreator)})

		assert.ErrorIs(t, err, approval.ErrNotAllowed)
	})
}

func TestApprovalService_Review(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()

	pending := func(approvers ...uuid.UUID) (*domain.Document, *domain.Approval) {
		doc := &domain.Document{ID: docID, CreatorID: uuid.New(), CurrentStatus: domain.DocStatusSubmitted}
		appr := &domain.Approval{
			ID:         uuid.New(),
			DocumentID: docID,
			Status:     domain.ApprovalPending,
			Approvers:  approvers,
			Revision:   len(approvers),
		}
		if len(approvers) > 0 {
			appr.Status = domain.ApprovalInProgress
		}
		return doc, appr
	}

	t.Run("First Approval Below Quorum", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := pending()
		actor := reviewer()

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()
		f.apprRepo.On("RecordDecision", ctx, appr.ID, actor.ID, domain.ApprovalInProgress, (*string)(nil), 0, docID, domain.DocStatusInProgress).Return(nil).Once()
		f.reviewRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Review) bool {
			return r.ReviewerID == actor.ID && r.Decision == domain.DecisionApproved
		})).Return(nil).Once()

		got, err := f.svc.Review(ctx, docID, actor, domain.DecisionApproved, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApprovalInProgress, got.Status)
		assert.Len(t, got.Approvers, 1)
		f.apprRepo.AssertExpectations(t)
		f.reviewRepo.AssertExpectations(t)
	})

	t.Run("Second Approval Reaches Quorum", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := pending(uuid.New())
		actor := reviewer()

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()
		f.apprRepo.On("RecordDecision", ctx, appr.ID, actor.ID, domain.ApprovalApproved, (*string)(nil), 1, docID, domain.DocStatusApproved).Return(nil).Once()
		f.reviewRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, err := f.svc.Review(ctx, docID, actor, domain.DecisionApproved, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApprovalApproved, got.Status)
		f.apprRepo.AssertExpectations(t)
	})

	t.Run("Single Rejection Finalizes", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := pending()
		actor := reviewer()
		comment := "Budget section is incomplete"

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()
		f.apprRepo.On("RecordDecision", ctx, appr.ID, actor.ID, domain.ApprovalRejected, &comment, 0, docID, domain.DocStatusRejected).Return(nil).Once()
		f.reviewRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, err := f.svc.Review(ctx, docID, actor, domain.DecisionRejected, &comment)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApprovalRejected, got.Status)
	})

	t.Run("Duplicate Reviewer Rejected", func(t *testing.T) {
		f := newApprovalFixture(2)
		actor := reviewer()
		doc, appr := pending(actor.ID)

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()

		_, err := f.svc.Review(ctx, docID, actor, domain.DecisionApproved, nil)

		assert.ErrorIs(t, err, approval.ErrDuplicateReview)
		f.apprRepo.AssertNotCalled(t, "RecordDecision",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Finalized Round Rejects Further Reviews", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := pending()
		appr.Status = domain.ApprovalApproved

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()

		_, err := f.svc.Review(ctx, docID, reviewer(), domain.DecisionApproved, nil)

		assert.ErrorIs(t, err, approval.ErrAlreadyFinalized)
	})

	t.Run("Draft Cannot Be Reviewed", func(t *testing.T) {
		f := newApprovalFixture(2)
		doc, appr := pending()
		appr.Status = domain.ApprovalDraft

		f.docRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()
		f.apprRepo.On("GetByDocumentID", ctx, docID).Return(appr, nil).Once()

		_, err := f.svc.Review(ctx, docID, reviewer(), domain.DecisionApproved, nil)

		assert.ErrorIs(t, err, approval.ErrNotSubmitted)
	})

	t.Run("Viewer Role Denied", func(t *testing.T) {
		f := newApprovalFixture(2)

		_, err := f.svc.Review(ctx, docID, &domain.User{ID: uuid.New(), Role: string(domain.RoleViewer)}, domain.DecisionApproved, nil)

		assert.ErrorIs(t, err, approval.ErrNotAllowed)
	})

	t.Run("Invalid Decision", func(t *testing.T) {
		f := newApprovalFixture(2)

		_, err := f.svc.Review(ctx, docID, reviewer(), domain.ReviewDecision("maybe"), nil)

		assert.ErrorIs(t, err, approval.ErrInvalidDecision)
	})
}

func TestApprovalService_CanAccess(t *testing.T) {
	f := newApprovalFixture(2)
	creatorID := uuid.New()

	doc := func(status domain.DocStatus) *domain.Document {
		return &domain.Document{ID: uuid.New(), CreatorID: creatorID, CurrentStatus: status}
	}
	userWith := func(role domain.UserRole) *domain.User {
		return &domain.User{ID: uuid.New(), Role: string(role)}
	}

	assert.True(t, f.svc.CanAccess(&domain.User{ID: creatorID, Role: string(domain.RoleCreator)}, doc(domain.DocStatusDraft)))
	assert.True(t, f.svc.CanAccess(userWith(domain.RoleAdmin), doc(domain.DocStatusDraft)))

	assert.False(t, f.svc.CanAccess(userWith(domain.RoleReviewer), doc(domain.DocStatusDraft)))
	assert.True(t, f.svc.CanAccess(userWith(domain.RoleReviewer), doc(domain.DocStatusSubmitted)))
	assert.True(t, f.svc.CanAccess(userWith(domain.RoleReviewer), doc(domain.DocStatusInProgress)))
	assert.False(t, f.svc.CanAccess(userWith(domain.RoleReviewer), doc(domain.DocStatusApproved)))

	assert.False(t, f.svc.CanAccess(userWith(domain.RoleViewer), doc(domain.DocStatusSubmitted)))
	assert.True(t, f.svc.CanAccess(userWith(domain.RoleViewer), doc(domain.DocStatusApproved)))
	assert.True(t, f.svc.CanAccess(userWith(domain.RoleClient), doc(domain.DocStatusApproved)))
	assert.False(t, f.svc.CanAccess(userWith(domain.RoleClient), doc(domain.DocStatusRejected)))
}
