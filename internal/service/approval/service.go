package approval

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/repository"
	"bidproposal-backend/internal/service/email"
	"bidproposal-backend/internal/service/notification"
)

var (
	ErrNotAllowed       = errors.New("actor is not allowed to perform this action")
	ErrDuplicateReview  = errors.New("reviewer has already reviewed this round")
	ErrAlreadyFinalized = errors.New("approval is already finalized")
	ErrInvalidDecision  = errors.New("invalid review decision")
	ErrNotSubmitted     = errors.New("document has not been submitted for review")
	ErrApprovalMissing  = errors.New("approval record not found for document")
)

// maxReviewAttempts bounds the optimistic retry loop over the approver set.
const maxReviewAttempts = 3

// Service is the approval state machine. Status flows
// draft -> submitted -> pending -> in_progress -> approved|rejected, with
// approved and rejected terminal. It owns approver bookkeeping and the
// notification side effects of each transition.
type Service interface {
	Create(ctx context.Context, doc *domain.Document, creator *domain.User) (*domain.Approval, error)
	Submit(ctx context.Context, documentID uuid.UUID, actor *domain.User) (*domain.Approval, error)
	Review(ctx context.Context, documentID uuid.UUID, actor *domain.User, decision domain.ReviewDecision, comments *string) (*domain.Approval, error)
	GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.Approval, error)
	CanAccess(actor *domain.User, doc *domain.Document) bool
	Quorum() int
}

type service struct {
	approvalRepo repository.ApprovalRepository
	docRepo      repository.DocumentRepository
	reviewRepo   repository.ReviewRepository
	userRepo     repository.UserRepository
	notifSvc     notification.Service
	emailSvc     email.Service
	quorum       int
}

func NewService(
	approvalRepo repository.ApprovalRepository,
	docRepo repository.DocumentRepository,
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	notifSvc notification.Service,
	emailSvc email.Service,
	quorum int,
) Service {
	if quorum < 1 {
		quorum = 2
	}
	return &service{
		approvalRepo: approvalRepo,
		docRepo:      docRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		notifSvc:     notifSvc,
		emailSvc:     emailSvc,
		quorum:       quorum,
	}
}

func (s *service) Quorum() int {
	return s.quorum
}

// Create establishes the approval record in draft alongside a new document
// and announces the document to all users.
func (s *service) Create(ctx context.Context, doc *domain.Document, creator *domain.User) (*domain.Approval, error) {
	approval := &domain.Approval{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		Status:     domain.ApprovalDraft,
		Approvers:  domain.ApproverList{},
	}

	if err := s.approvalRepo.Create(ctx, approval); err != nil {
		return nil, err
	}

	go func() {
		if err := s.notifSvc.NotifyDocumentCreated(context.Background(), doc, creator); err != nil {
			log.Printf("failed to notify document creation for %s: %v", doc.ID, err)
		}
	}()

	return approval, nil
}

// Submit moves the approval draft -> pending and the document draft ->
// submitted in one transactional step. Only the creator or an admin may
// submit.
func (s *service) Submit(ctx context.Context, documentID uuid.UUID, actor *domain.User) (*domain.Approval, error) {
	doc, approval, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.CreatorID != actor.ID && !actor.IsAdmin() {
		return nil, ErrNotAllowed
	}
	if approval.Status.IsTerminal() {
		return nil, ErrAlreadyFinalized
	}
	if approval.Status != domain.ApprovalDraft {
		return nil, fmt.Errorf("%w: cannot submit from status %s", ErrNotAllowed, approval.Status)
	}

	err = s.approvalRepo.Transition(ctx, approval.ID, domain.ApprovalPending, approval.Revision, doc.ID, domain.DocStatusSubmitted)
	if err != nil {
		if errors.Is(err, repository.ErrStaleRevision) {
			return nil, fmt.Errorf("%w: concurrent submit", ErrNotAllowed)
		}
		return nil, err
	}

	approval.Status = domain.ApprovalPending
	doc.CurrentStatus = domain.DocStatusSubmitted

	s.notifyReviewers(doc, actor)

	return approval, nil
}

// Review appends the actor to the approver set and applies the decision:
// a single rejection finalizes immediately; approvals finalize once the set
// reaches quorum; anything else parks the round in in_progress. The append is
// revision-guarded so concurrent reviewers serialize.
func (s *service) Review(ctx context.Context, documentID uuid.UUID, actor *domain.User, decision domain.ReviewDecision, comments *string) (*domain.Approval, error) {
	if !decision.IsValid() {
		return nil, ErrInvalidDecision
	}
	if !actor.HasAnyRole(domain.RoleReviewer, domain.RoleAdmin) {
		return nil, ErrNotAllowed
	}

	for attempt := 0; attempt < maxReviewAttempts; attempt++ {
		doc, approval, err := s.load(ctx, documentID)
		if err != nil {
			return nil, err
		}

		if approval.Status.IsTerminal() {
			return nil, ErrAlreadyFinalized
		}
		if approval.Status != domain.ApprovalPending && approval.Status != domain.ApprovalInProgress {
			return nil, ErrNotSubmitted
		}
		if approval.Approvers.Contains(actor.ID) {
			return nil, ErrDuplicateReview
		}

		nextStatus := s.nextStatus(approval, decision)

		err = s.approvalRepo.RecordDecision(ctx, approval.ID, actor.ID, nextStatus, comments, approval.Revision, doc.ID, docStatusFor(nextStatus))
		if errors.Is(err, repository.ErrStaleRevision) {
			continue
		}
		if err != nil {
			return nil, err
		}

		review := &domain.Review{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			ReviewerID: actor.ID,
			Decision:   decision,
			Comments:   comments,
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			log.Printf("failed to record review audit for document %s: %v", doc.ID, err)
		}

		approval.Approvers = append(approval.Approvers, actor.ID)
		approval.Status = nextStatus
		doc.CurrentStatus = docStatusFor(nextStatus)

		s.notifyCreator(doc, nextStatus)

		return approval, nil
	}

	return nil, fmt.Errorf("%w: concurrent reviews in progress", ErrDuplicateReview)
}

func (s *service) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*domain.Approval, error) {
	approval, err := s.approvalRepo.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, ErrApprovalMissing
	}
	return approval, nil
}

// CanAccess is the single read-capability table: creator and admin always,
// reviewers while a round is open, viewers and clients only after approval.
func (s *service) CanAccess(actor *domain.User, doc *domain.Document) bool {
	if actor == nil || doc == nil {
		return false
	}
	if doc.CreatorID == actor.ID || actor.IsAdmin() {
		return true
	}

	switch domain.UserRole(actor.Role) {
	case domain.RoleReviewer:
		return doc.CurrentStatus == domain.DocStatusSubmitted || doc.CurrentStatus == domain.DocStatusInProgress
	case domain.RoleViewer, domain.RoleClient:
		return doc.CurrentStatus == domain.DocStatusApproved
	default:
		return false
	}
}

func (s *service) nextStatus(approval *domain.Approval, decision domain.ReviewDecision) domain.ApprovalStatus {
	if decision == domain.DecisionRejected {
		return domain.ApprovalRejected
	}
	// The acting reviewer counts toward quorum.
	if len(approval.Approvers)+1 >= s.quorum {
		return domain.ApprovalApproved
	}
	return domain.ApprovalInProgress
}

func docStatusFor(status domain.ApprovalStatus) domain.DocStatus {
	switch status {
	case domain.ApprovalApproved:
		return domain.DocStatusApproved
	case domain.ApprovalRejected:
		return domain.DocStatusRejected
	default:
		return domain.DocStatusInProgress
	}
}

func (s *service) load(ctx context.Context, documentID uuid.UUID) (*domain.Document, *domain.Approval, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.ErrDocumentNotFound
	}

	approval, err := s.approvalRepo.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if approval == nil {
		return nil, nil, ErrApprovalMissing
	}

	return doc, approval, nil
}

func (s *service) notifyReviewers(doc *domain.Document, submitter *domain.User) {
	go func() {
		ctx := context.Background()

		if err := s.notifSvc.NotifyReviewRequested(ctx, doc, submitter); err != nil {
			log.Printf("failed to notify reviewers for document %s: %v", doc.ID, err)
		}

		reviewers, err := s.userRepo.GetByRoles(ctx, []domain.UserRole{domain.RoleReviewer})
		if err != nil {
			log.Printf("failed to load reviewers for document %s: %v", doc.ID, err)
			return
		}
		for _, reviewer := range reviewers {
			if err := s.emailSvc.SendReviewRequest(ctx, reviewer.Email, reviewer.FullName, doc.Name); err != nil {
				log.Printf("failed to email reviewer %s: %v", reviewer.ID, err)
			}
		}
	}()
}

func (s *service) notifyCreator(doc *domain.Document, status domain.ApprovalStatus) {
	go func() {
		ctx := context.Background()

		if err := s.notifSvc.NotifyReviewed(ctx, doc, status); err != nil {
			log.Printf("failed to notify creator for document %s: %v", doc.ID, err)
		}

		creator, err := s.userRepo.GetByID(ctx, doc.CreatorID)
		if err != nil || creator == nil {
			return
		}
		if err := s.emailSvc.SendReviewResult(ctx, creator.Email, creator.FullName, doc.Name, string(status)); err != nil {
			log.Printf("failed to email creator %s: %v", creator.ID, err)
		}
	}()
}
