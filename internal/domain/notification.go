package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID         uuid.UUID  `json:"id" db:"notification_id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	DocumentID uuid.UUID  `json:"document_id" db:"document_id"`
	Message    string     `json:"message" db:"message"`
	IsRead     bool       `json:"is_read" db:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
