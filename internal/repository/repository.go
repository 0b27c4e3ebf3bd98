package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrStaleRevision is returned by compare-and-set writes when the expected
// revision no longer matches; callers re-read and retry.
var ErrStaleRevision = errors.New("stale revision")

type Repositories struct {
	User         UserRepository
	Document     DocumentRepository
	Approval     ApprovalRepository
	Review       ReviewRepository
	Notification NotificationRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Document:     NewDocumentRepository(db),
		Approval:     NewApprovalRepository(db),
		Review:       NewReviewRepository(db),
		Notification: NewNotificationRepository(db),
		Session:      NewSessionRepository(db),
	}
}
