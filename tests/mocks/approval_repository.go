package mocks

import (
	"context"

	"bidproposal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ApprovalRepository struct {
	mock.Mock
}

func (m *ApprovalRepository) Create(ctx context.Context, approval *domain.Approval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *ApprovalRepository) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.Approval, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *ApprovalRepository) Transition(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, expectedRevision int, documentID uuid.UUID, docStatus domain.DocStatus) error {
	args := m.Called(ctx, id, status, expectedRevision, documentID, docStatus)
	return args.Error(0)
}

func (m *ApprovalRepository) RecordDecision(ctx context.Context, id uuid.UUID, approverID uuid.UUID, status domain.ApprovalStatus, comments *string, expectedRevision int, documentID uuid.UUID, docStatus domain.DocStatus) error {
	args := m.Called(ctx, id, approverID, status, comments, expectedRevision, documentID, docStatus)
	return args.Error(0)
}
