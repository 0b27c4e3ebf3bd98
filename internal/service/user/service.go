package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	AssignRole(ctx context.Context, input domain.AssignRoleInput) (*domain.User, error)
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) AssignRole(ctx context.Context, input domain.AssignRoleInput) (*domain.User, error) {
	if !domain.UserRole(input.Role).IsValid() {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.AssignRole(ctx, input.UserID, input.Role); err != nil {
		return nil, err
	}

	user.Role = input.Role
	return user, nil
}
