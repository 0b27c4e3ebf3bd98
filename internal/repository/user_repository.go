package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bidproposal-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role string) error
	GetByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error)
	GetAllActive(ctx context.Context) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) AssignRole(ctx context.Context, userID uuid.UUID, role string) error {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	var updatedAt time.Time
	err := r.db.QueryRowxContext(ctx, query, userID, role).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("user not found")
	}
	return err
}

func (r *userRepository) GetByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	query, args, err := sqlx.In(`
		SELECT * FROM users
		WHERE role IN (?) AND is_active = true AND deleted_at IS NULL`, names)
	if err != nil {
		return nil, err
	}

	var users []domain.User
	err = r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...)
	return users, err
}

func (r *userRepository) GetAllActive(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users WHERE is_active = true AND deleted_at IS NULL`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users WHERE deleted_at IS NULL ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}
