package mocks

import (
	"context"

	"bidproposal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Review, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
