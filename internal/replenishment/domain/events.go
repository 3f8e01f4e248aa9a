package domain

import "github.com/google/uuid"

const EventDecided = "replenishment.decided"

type ReplenishmentDecided struct {
	RequestID   uuid.UUID      `json:"request_id"`
	ProductID   uuid.UUID      `json:"product_id"`
	ProductName string         `json:"product_name"`
	Quantity    int            `json:"quantity"`
	RequestedBy uuid.UUID      `json:"requested_by"`
	Stage       Stage          `json:"stage"`
	Decision    ApprovalStatus `json:"decision"`
	DecidedBy   uuid.UUID      `json:"decided_by"`
}
