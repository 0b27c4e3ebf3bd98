package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bidproposal-backend/internal/domain"
)

type ApprovalRepository interface {
	Create(ctx context.Context, approval *domain.Approval) error
	GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.Approval, error)
	Transition(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, expectedRevision int, documentID uuid.UUID, docStatus domain.DocStatus) error
	RecordDecision(ctx context.Context, id uuid.UUID, approverID uuid.UUID, status domain.ApprovalStatus, comments *string, expectedRevision int, documentID uuid.UUID, docStatus domain.DocStatus) error
}

type approvalRepository struct {
	db *sqlx.DB
}

func NewApprovalRepository(db *sqlx.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, approval *domain.Approval) error {
	query := `
		INSERT INTO approvals (approval_id, document_id, status, approvers, comments, revision)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		approval.ID, approval.DocumentID, approval.Status, approval.Approvers, approval.Comments,
	).Scan(&approval.CreatedAt, &approval.UpdatedAt)
}

func (r *approvalRepository) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.Approval, error) {
	var approval domain.Approval
	query := `SELECT * FROM approvals WHERE document_id = $1`

	err := r.db.GetContext(ctx, &approval, query, documentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

// Transition moves the approval round to a new status and the owning document
// to the matching status in one transaction, so neither row can be observed
// ahead of the other. The approval revision guards against concurrent writers.
func (r *approvalRepository) Transition(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, expectedRevision int, documentID uuid.UUID, docStatus domain.DocStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE approvals
		SET status = $2, revision = revision + 1, updated_at = NOW()
		WHERE approval_id = $1 AND revision = $3`

	res, err := tx.ExecContext(ctx, query, id, status, expectedRevision)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStaleRevision
	}

	if err := updateDocumentStatus(ctx, tx, documentID, docStatus); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordDecision appends one approver, sets the resulting round status and the
// matching document status in a single revision-guarded transaction, so two
// concurrent reviews cannot both apply against the same approver set and the
// document never lags a finalized round.
func (r *approvalRepository) RecordDecision(ctx context.Context, id uuid.UUID, approverID uuid.UUID, status domain.ApprovalStatus, comments *string, expectedRevision int, documentID uuid.UUID, docStatus domain.DocStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE approvals
		SET approvers = approvers || to_jsonb($2::text),
			status = $3,
			comments = COALESCE($4, comments),
			revision = revision + 1,
			updated_at = NOW()
		WHERE approval_id = $1 AND revision = $5`

	res, err := tx.ExecContext(ctx, query, id, approverID.String(), status, comments, expectedRevision)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStaleRevision
	}

	if err := updateDocumentStatus(ctx, tx, documentID, docStatus); err != nil {
		return err
	}
	return tx.Commit()
}

func updateDocumentStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status domain.DocStatus) error {
	query := `
		UPDATE documents
		SET current_status = $2, revision = revision + 1, last_modified = NOW()
		WHERE document_id = $1`

	res, err := tx.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
