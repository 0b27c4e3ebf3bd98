package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Approval tracks the review round of exactly one document. ApproverIDs keeps
// insertion order for audit; membership is checked before append so an
// approver appears at most once per round. Revision is the optimistic
// concurrency token for the approver set.
type Approval struct {
	ID         uuid.UUID      `json:"id" db:"approval_id"`
	DocumentID uuid.UUID      `json:"document_id" db:"document_id"`
	Status     ApprovalStatus `json:"status" db:"status"`
	Approvers  ApproverList   `json:"approvers" db:"approvers"`
	Comments   *string        `json:"comments,omitempty" db:"comments"`
	Revision   int            `json:"-" db:"revision"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

type ApprovalStatus string

const (
	ApprovalDraft      ApprovalStatus = "draft"
	ApprovalSubmitted  ApprovalStatus = "submitted"
	ApprovalPending    ApprovalStatus = "pending"
	ApprovalInProgress ApprovalStatus = "in_progress"
	ApprovalApproved   ApprovalStatus = "approved"
	ApprovalRejected   ApprovalStatus = "rejected"
)

func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// ApproverList stores the insertion-ordered approver set as a JSONB column.
type ApproverList []uuid.UUID

func (a ApproverList) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

func (a *ApproverList) Scan(src any) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, a)
	case string:
		return json.Unmarshal([]byte(data), a)
	case nil:
		*a = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for ApproverList", src)
	}
}

func (a ApproverList) Contains(id uuid.UUID) bool {
	for _, approver := range a {
		if approver == id {
			return true
		}
	}
	return false
}

type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "approved"
	DecisionRejected ReviewDecision = "rejected"
)

func (d ReviewDecision) IsValid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// Review is the per-action audit record: one row per reviewer decision.
type Review struct {
	ID         uuid.UUID      `json:"id" db:"review_id"`
	DocumentID uuid.UUID      `json:"document_id" db:"document_id"`
	ReviewerID uuid.UUID      `json:"reviewer_id" db:"reviewer_id"`
	Decision   ReviewDecision `json:"decision" db:"decision"`
	Comments   *string        `json:"comments,omitempty" db:"comments"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

type RecordReviewInput struct {
	Decision ReviewDecision `json:"decision" validate:"required,oneof=approved rejected"`
	Comments *string        `json:"comments,omitempty" validate:"omitempty,max=2000"`
}
