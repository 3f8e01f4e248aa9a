package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("request order not found")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidDecision     = errors.New("decision must be Approved or Rejected")
	ErrAlreadyDecided      = errors.New("approval stage already decided")
	ErrNotYetAdminApproved = errors.New("request is not admin approved")
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// ValidDecision reports whether s is an actual decision, i.e. not Pending.
func ValidDecision(s ApprovalStatus) bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

type Stage string

const (
	StageAdmin     Stage = "admin"
	StageWarehouse Stage = "warehouse"
)

// RequestOrder is a restocking request that passes two sequential approval
// gates: admin first, then warehouse. Stock is incremented only when both
// gates approve.
type RequestOrder struct {
	ID                uuid.UUID
	ProductID         uuid.UUID
	ProductName       string
	Quantity          int
	RequestedBy       uuid.UUID
	AdminApproval     ApprovalStatus
	WarehouseApproval ApprovalStatus
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewRequestOrder(productID uuid.UUID, qty int, requestedBy uuid.UUID, notes string) (RequestOrder, error) {
	if qty <= 0 {
		return RequestOrder{}, ErrInvalidQuantity
	}
	now := time.Now().UTC()
	return RequestOrder{
		ID:                uuid.New(),
		ProductID:         productID,
		Quantity:          qty,
		RequestedBy:       requestedBy,
		AdminApproval:     ApprovalPending,
		WarehouseApproval: ApprovalPending,
		Notes:             notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// DecideAdmin records the first-stage decision. A rejection leaves the
// warehouse stage permanently unreachable.
func (r *RequestOrder) DecideAdmin(decision ApprovalStatus) error {
	if !ValidDecision(decision) {
		return ErrInvalidDecision
	}
	if r.AdminApproval != ApprovalPending {
		return ErrAlreadyDecided
	}
	r.AdminApproval = decision
	return nil
}

// DecideWarehouse records the second-stage decision. It is only reachable
// once the admin stage approved.
func (r *RequestOrder) DecideWarehouse(decision ApprovalStatus) error {
	if !ValidDecision(decision) {
		return ErrInvalidDecision
	}
	if r.AdminApproval != ApprovalApproved {
		return ErrNotYetAdminApproved
	}
	if r.WarehouseApproval != ApprovalPending {
		return ErrAlreadyDecided
	}
	r.WarehouseApproval = decision
	return nil
}

// Terminal reports whether no further transition is possible.
func (r RequestOrder) Terminal() bool {
	if r.AdminApproval == ApprovalRejected {
		return true
	}
	return r.AdminApproval != ApprovalPending && r.WarehouseApproval != ApprovalPending
}

// ListFilter narrows request listings; nil fields mean "no constraint".
type ListFilter struct {
	AdminApproval     *ApprovalStatus
	WarehouseApproval *ApprovalStatus
	RequestedBy       uuid.UUID
}
