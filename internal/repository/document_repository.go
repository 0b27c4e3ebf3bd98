package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bidproposal-backend/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Document, int64, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, params domain.PaginationParams) ([]domain.Document, int64, error)
	ListByStatuses(ctx context.Context, statuses []domain.DocStatus, params domain.PaginationParams) ([]domain.Document, int64, error)
	AppendVersion(ctx context.Context, id uuid.UUID, version domain.Version, expectedRevision int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (document_id, name, creator_id, current_status, used_model, folder_name, versions, revision)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
		RETURNING created_at, last_modified`

	return r.db.QueryRowxContext(ctx, query,
		doc.ID, doc.Name, doc.CreatorID, doc.CurrentStatus, doc.UsedModel, doc.FolderName, doc.Versions,
	).Scan(&doc.CreatedAt, &doc.LastModified)
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	query := `SELECT * FROM documents WHERE document_id = $1`

	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Document, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM documents`); err != nil {
		return nil, 0, err
	}

	var docs []domain.Document
	query := `
		SELECT * FROM documents
		ORDER BY last_modified DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &docs, query, params.PageSize, params.Offset())
	return docs, total, err
}

func (r *documentRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, params domain.PaginationParams) ([]domain.Document, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM documents WHERE creator_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, creatorID); err != nil {
		return nil, 0, err
	}

	var docs []domain.Document
	query := `
		SELECT * FROM documents
		WHERE creator_id = $1
		ORDER BY last_modified DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &docs, query, creatorID, params.PageSize, params.Offset())
	return docs, total, err
}

func (r *documentRepository) ListByStatuses(ctx context.Context, statuses []domain.DocStatus, params domain.PaginationParams) ([]domain.Document, int64, error) {
	params.Validate()

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	countQuery, countArgs, err := sqlx.In(`SELECT COUNT(*) FROM documents WHERE current_status IN (?)`, names)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	listQuery, listArgs, err := sqlx.In(`
		SELECT * FROM documents
		WHERE current_status IN (?)
		ORDER BY last_modified DESC
		LIMIT ? OFFSET ?`, names, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs, r.db.Rebind(listQuery), listArgs...)
	return docs, total, err
}

// AppendVersion appends one version entry to the embedded chain, guarded by
// the document revision. A concurrent writer bumps the revision first and the
// loser gets ErrStaleRevision.
func (r *documentRepository) AppendVersion(ctx context.Context, id uuid.UUID, version domain.Version, expectedRevision int) error {
	payload, err := json.Marshal(version)
	if err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET versions = versions || $2::jsonb,
			revision = revision + 1,
			last_modified = NOW()
		WHERE document_id = $1 AND revision = $3`

	res, err := r.db.ExecContext(ctx, query, id, payload, expectedRevision)
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
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE document_id = $1`, id)
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
