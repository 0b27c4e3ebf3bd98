package mocks

import (
	"context"

	"bidproposal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ApprovalService struct {
	mock.Mock
}

func (m *ApprovalService) Create(ctx context.Context, doc *domain.Document, creator *domain.User) (*domain.Approval, error) {
	args := m.Called(ctx, doc, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *ApprovalService) Submit(ctx context.Context, documentID uuid.UUID, actor *domain.User) (*domain.Approval, error) {
	args := m.Called(ctx, documentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *ApprovalService) Review(ctx context.Context, documentID uuid.UUID, actor *domain.User, decision domain.ReviewDecision, comments *string) (*domain.Approval, error) {
	args := m.Called(ctx, documentID, actor, decision, comments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *ApprovalService) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.Approval, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *ApprovalService) CanAccess(actor *domain.User, doc *domain.Document) bool {
	args := m.Called(actor, doc)
	return args.Bool(0)
}

func (m *ApprovalService) Quorum() int {
	args := m.Called()
	return args.Int(0)
}
