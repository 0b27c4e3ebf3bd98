package document

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/repository"
	"bidproposal-backend/internal/service/approval"
	"bidproposal-backend/internal/service/artifact"
	"bidproposal-backend/internal/service/generation"
	"bidproposal-backend/internal/service/version"
)

var (
	ErrAccessDenied = errors.New("access to this document is denied")
	ErrNotEditable  = errors.New("document can no longer be edited")
)

// rfqSectionName is the single section a proposal generated from an RFQ gets.
const rfqSectionName = "Technical Proposal"

// Service orchestrates document creation and access. Generation runs first,
// fully, before anything is persisted: a document either appears complete with
// version 1 or not at all.
type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateDocumentInput) (*domain.Document, error)
	CreateFromRFQ(ctx context.Context, actor *domain.User, input domain.CreateFromRFQInput) (*domain.Document, error)
	UpdateSection(ctx context.Context, actor *domain.User, input domain.UpdateSectionInput) (*domain.Document, error)
	Submit(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error)
	Review(ctx context.Context, actor *domain.User, documentID uuid.UUID, input domain.RecordReviewInput) (*domain.Document, error)
	Get(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error)
	GetVersion(ctx context.Context, actor *domain.User, documentID uuid.UUID, number int) ([]byte, error)
	List(ctx context.Context, actor *domain.User, params domain.PaginationParams) (domain.PaginatedResponse[domain.Document], error)
	ListReviews(ctx context.Context, actor *domain.User, documentID uuid.UUID) ([]domain.Review, error)
}

type service struct {
	docRepo     repository.DocumentRepository
	reviewRepo  repository.ReviewRepository
	genSvc      generation.Service
	store       artifact.Service
	versionSvc  version.Service
	approvalSvc approval.Service
}

func NewService(
	docRepo repository.DocumentRepository,
	reviewRepo repository.ReviewRepository,
	genSvc generation.Service,
	store artifact.Service,
	versionSvc version.Service,
	approvalSvc approval.Service,
) Service {
	return &service{
		docRepo:     docRepo,
		reviewRepo:  reviewRepo,
		genSvc:      genSvc,
		store:       store,
		versionSvc:  versionSvc,
		approvalSvc: approvalSvc,
	}
}

// Create runs the full generation pipeline: plan, then every section in plan
// order. Any section failure aborts the whole request before persistence.
func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateDocumentInput) (*domain.Document, error) {
	if !actor.HasAnyRole(domain.RoleCreator, domain.RoleAdmin) {
		return nil, ErrAccessDenied
	}

	plan, err := s.genSvc.SummarizeAndPlan(ctx, input.ProjectName, input.ProjectDetails)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.SectionContent, 0, len(plan.Sections))
	for _, name := range plan.Sections {
		body, err := s.genSvc.GenerateSection(ctx, input.ProjectName, plan.Summary, input.ProjectDetails, name)
		if err != nil {
			return nil, fmt.Errorf("failed to generate section %q: %w", name, err)
		}
		sections = append(sections, domain.SectionContent{Name: name, Body: body})
	}

	content := domain.DocumentContent{
		ProjectName: input.ProjectName,
		Summary:     plan.Summary,
		Sections:    sections,
	}

	return s.persistNew(ctx, actor, input.ProjectName, content)
}

// CreateFromRFQ turns raw RFQ text into a single-section proposal document.
func (s *service) CreateFromRFQ(ctx context.Context, actor *domain.User, input domain.CreateFromRFQInput) (*domain.Document, error) {
	if !actor.HasAnyRole(domain.RoleCreator, domain.RoleAdmin) {
		return nil, ErrAccessDenied
	}

	proposal, err := s.genSvc.GenerateFromDocument(ctx, input.RFQText)
	if err != nil {
		return nil, err
	}

	name := documentNameFromFile(input.FileName)
	content := domain.DocumentContent{
		ProjectName: name,
		Summary:     fmt.Sprintf("Technical proposal generated from %s.", input.FileName),
		Sections:    []domain.SectionContent{{Name: rfqSectionName, Body: proposal}},
	}

	return s.persistNew(ctx, actor, name, content)
}

// persistNew creates the storage folder, writes the version 1 artifact and
// only then inserts the document row with the chain already populated, so a
// storage failure leaves no metadata behind. If the draft approval cannot be
// created afterwards the row is removed again rather than left as a document
// that can never be submitted.
func (s *service) persistNew(ctx context.Context, actor *domain.User, name string, content domain.DocumentContent) (*domain.Document, error) {
	id := uuid.New()

	folder, err := s.store.CreateFolder(ctx, fmt.Sprintf("%s-%s", slugify(name), id))
	if err != nil {
		return nil, err
	}

	v, err := s.versionSvc.WriteInitialVersion(ctx, folder, content)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:            id,
		Name:          name,
		CreatorID:     actor.ID,
		CurrentStatus: domain.DocStatusDraft,
		UsedModel:     s.genSvc.Model(),
		FolderName:    folder,
		Versions:      domain.VersionList{*v},
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if _, err := s.approvalSvc.Create(ctx, doc, actor); err != nil {
		if delErr := s.docRepo.Delete(ctx, doc.ID); delErr != nil {
			log.Printf("failed to remove document %s after approval setup failure: %v", doc.ID, delErr)
		}
		return nil, err
	}

	return doc, nil
}

// UpdateSection regenerates one section and appends the result as a new
// version. Only the creator or an admin may edit, and only while the document
// is not finalized.
func (s *service) UpdateSection(ctx context.Context, actor *domain.User, input domain.UpdateSectionInput) (*domain.Document, error) {
	doc, err := s.mustGet(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.CreatorID != actor.ID && !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if doc.CurrentStatus.IsTerminal() {
		return nil, ErrNotEditable
	}

	if _, err := s.versionSvc.UpdateSection(ctx, doc.ID, input.SectionName, input.Instructions); err != nil {
		return nil, err
	}

	return s.mustGet(ctx, doc.ID)
}

func (s *service) Submit(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error) {
	if _, err := s.approvalSvc.Submit(ctx, documentID, actor); err != nil {
		return nil, err
	}
	return s.mustGet(ctx, documentID)
}

func (s *service) Review(ctx context.Context, actor *domain.User, documentID uuid.UUID, input domain.RecordReviewInput) (*domain.Document, error) {
	if _, err := s.approvalSvc.Review(ctx, documentID, actor, input.Decision, input.Comments); err != nil {
		return nil, err
	}
	return s.mustGet(ctx, documentID)
}

func (s *service) Get(ctx context.Context, actor *domain.User, documentID uuid.UUID) (*domain.Document, error) {
	doc, err := s.mustGet(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !s.approvalSvc.CanAccess(actor, doc) {
		return nil, ErrAccessDenied
	}
	return doc, nil
}

func (s *service) GetVersion(ctx context.Context, actor *domain.User, documentID uuid.UUID, number int) ([]byte, error) {
	doc, err := s.mustGet(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !s.approvalSvc.CanAccess(actor, doc) {
		return nil, ErrAccessDenied
	}
	return s.versionSvc.GetVersionArtifact(ctx, documentID, number)
}

// List narrows the result set to what the actor may see: admins get
// everything, creators their own, reviewers the open rounds, viewers and
// clients the approved set.
func (s *service) List(ctx context.Context, actor *domain.User, params domain.PaginationParams) (domain.PaginatedResponse[domain.Document], error) {
	var (
		docs  []domain.Document
		total int64
		err   error
	)

	switch {
	case actor.IsAdmin():
		docs, total, err = s.docRepo.List(ctx, params)
	case actor.HasRole(domain.RoleCreator):
		docs, total, err = s.docRepo.ListByCreator(ctx, actor.ID, params)
	case actor.HasRole(domain.RoleReviewer):
		docs, total, err = s.docRepo.ListByStatuses(ctx,
			[]domain.DocStatus{domain.DocStatusSubmitted, domain.DocStatusInProgress}, params)
	default:
		docs, total, err = s.docRepo.ListByStatuses(ctx,
			[]domain.DocStatus{domain.DocStatusApproved}, params)
	}
	if err != nil {
		return domain.PaginatedResponse[domain.Document]{}, err
	}

	return domain.NewPaginatedResponse(docs, params.Page, params.PageSize, total), nil
}

func (s *service) ListReviews(ctx context.Context, actor *domain.User, documentID uuid.UUID) ([]domain.Review, error) {
	doc, err := s.mustGet(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !s.approvalSvc.CanAccess(actor, doc) {
		return nil, ErrAccessDenied
	}
	return s.reviewRepo.ListByDocument(ctx, documentID)
}

func (s *service) mustGet(ctx context.Context, documentID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func documentNameFromFile(fileName string) string {
	name := fileName
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

// slugify flattens a display name into a storage-safe folder prefix.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "document"
	}
	return slug
}
