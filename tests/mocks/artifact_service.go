package mocks

import (
	"context"

	"bidproposal-backend/internal/service/artifact"

	"github.com/stretchr/testify/mock"
)

type ArtifactService struct {
	mock.Mock
}

func (m *ArtifactService) CreateFolder(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *ArtifactService) PutFile(ctx context.Context, folder, fileName string, data []byte) error {
	args := m.Called(ctx, folder, fileName, data)
	return args.Error(0)
}

func (m *ArtifactService) GetFile(ctx context.Context, folder, fileName string) ([]byte, error) {
	args := m.Called(ctx, folder, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *ArtifactService) ListChildren(ctx context.Context, folder string) ([]artifact.Item, error) {
	args := m.Called(ctx, folder)
	return args.Get(0).([]artifact.Item), args.Error(1)
}

func (m *ArtifactService) DeleteItem(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *ArtifactService) UpdateFile(ctx context.Context, path string, data []byte) error {
	args := m.Called(ctx, path, data)
	return args.Error(0)
}
