package identity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold. Every authorization
// decision is a function of this single field.
type Role string

const (
	RoleAdmin            Role = "Admin"
	RoleWarehouseManager Role = "Warehouse Manager"
	RoleStaff            Role = "Staff"
	RoleCustomer         Role = "Customer"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleWarehouseManager, RoleStaff, RoleCustomer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// User is the resolved identity a trusted gateway attaches to each request.
// Token issuance and verification live outside this service.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}
