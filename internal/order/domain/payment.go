package domain

import "github.com/google/uuid"

// PaymentMethod is a static lookup row. Methods are seeded by migration and
// toggled via is_active rather than managed through the API.
type PaymentMethod struct {
	ID   uuid.UUID
	Name string
}
