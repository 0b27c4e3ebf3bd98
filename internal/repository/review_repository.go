package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bidproposal-backend/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Review, error)
}

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (review_id, document_id, reviewer_id, decision, comments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		review.ID, review.DocumentID, review.ReviewerID, review.Decision, review.Comments,
	).Scan(&review.CreatedAt)
}

func (r *reviewRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	query := `SELECT * FROM reviews WHERE document_id = $1 ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &reviews, query, documentID)
	return reviews, err
}
