package mocks

import (
	"context"

	"bidproposal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type VersionService struct {
	mock.Mock
}

func (m *VersionService) WriteInitialVersion(ctx context.Context, folderName string, content domain.DocumentContent) (*domain.Version, error) {
	args := m.Called(ctx, folderName, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Version), args.Error(1)
}

func (m *VersionService) AppendVersion(ctx context.Context, documentID uuid.UUID, content domain.DocumentContent) (*domain.Version, error) {
	args := m.Called(ctx, documentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Version), args.Error(1)
}

func (m *VersionService) GetLatestVersion(ctx context.Context, documentID uuid.UUID) (*domain.Version, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Version), args.Error(1)
}

func (m *VersionService) UpdateSection(ctx context.Context, documentID uuid.UUID, sectionName, instructions string) (*domain.Version, error) {
	args := m.Called(ctx, documentID, sectionName, instructions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Version), args.Error(1)
}

func (m *VersionService) GetVersionArtifact(ctx context.Context, documentID uuid.UUID, number int) ([]byte, error) {
	args := m.Called(ctx, documentID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
