package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendRegistrationEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendReviewRequest(ctx context.Context, toEmail, reviewerName, documentName string) error {
	args := m.Called(ctx, toEmail, reviewerName, documentName)
	return args.Error(0)
}

func (m *EmailService) SendReviewResult(ctx context.Context, toEmail, creatorName, documentName, status string) error {
	args := m.Called(ctx, toEmail, creatorName, documentName, status)
	return args.Error(0)
}
