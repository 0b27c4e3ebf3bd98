package mocks

import (
	"context"

	"bidproposal-backend/internal/service/generation"

	"github.com/stretchr/testify/mock"
)

type GenerationService struct {
	mock.Mock
}

func (m *GenerationService) SummarizeAndPlan(ctx context.Context, projectName, projectDetails string) (*generation.ProjectPlan, error) {
	args := m.Called(ctx, projectName, projectDetails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.ProjectPlan), args.Error(1)
}

func (m *GenerationService) GenerateSection(ctx context.Context, projectName, summary, projectDetails, sectionName string) (string, error) {
	args := m.Called(ctx, projectName, summary, projectDetails, sectionName)
	return args.String(0), args.Error(1)
}

func (m *GenerationService) ReviseSection(ctx context.Context, sectionName, currentContent, instructions string) (string, error) {
	args := m.Called(ctx, sectionName, currentContent, instructions)
	return args.String(0), args.Error(1)
}

func (m *GenerationService) GenerateFromDocument(ctx context.Context, rfqText string) (string, error) {
	args := m.Called(ctx, rfqText)
	return args.String(0), args.Error(1)
}

func (m *GenerationService) ReviewProposal(ctx context.Context, proposalText string) (string, error) {
	args := m.Called(ctx, proposalText)
	return args.String(0), args.Error(1)
}

func (m *GenerationService) Model() string {
	args := m.Called()
	return args.String(0)
}
