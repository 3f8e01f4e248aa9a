package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

// Notification is an in-app record delivered to one user. The payload is the
// raw domain event that produced it.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Payload   []byte
	ReadAt    *time.Time
	CreatedAt time.Time
}

func New(userID uuid.UUID, eventType string, payload []byte) Notification {
	return Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}
