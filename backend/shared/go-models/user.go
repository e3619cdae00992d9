package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserKind string

const (
	UserKindAdmin  UserKind = "ADMIN"
	UserKindTenant UserKind = "TENANT"
	UserKindOwner  UserKind = "OWNER"
)

// ParseUserKind accepts the stored kind text in any case.
func ParseUserKind(s string) (UserKind, error) {
	switch UserKind(strings.ToUpper(strings.TrimSpace(s))) {
	case UserKindAdmin:
		return UserKindAdmin, nil
	case UserKindTenant:
		return UserKindTenant, nil
	case UserKindOwner:
		return UserKindOwner, nil
	default:
		return "", fmt.Errorf("invalid user kind: %q", s)
	}
}

// AdminProfile is the admin-only payload. Owned buildings are reached through
// Building.AdminID, never stored here.
type AdminProfile struct {
	CompanyName string `json:"company_name,omitempty"`
}

// TenantProfile is the tenant-only payload.
type TenantProfile struct {
	ApartmentID *uuid.UUID `json:"apartment_id,omitempty"`
	MoveInDate  *time.Time `json:"move_in_date,omitempty"`
}

// OwnerProfile is the owner-only payload.
type OwnerProfile struct {
	IBAN string `json:"iban,omitempty"`
}

// User is a tagged union over the three account variants. Exactly one of
// Admin, Tenant or Owner is set, matching Kind. The variant is resolved once
// when the row is scanned.
type User struct {
	ID          uuid.UUID `json:"id"`
	Kind        UserKind  `json:"kind"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	Admin  *AdminProfile  `json:"admin,omitempty"`
	Tenant *TenantProfile `json:"tenant,omitempty"`
	Owner  *OwnerProfile  `json:"owner,omitempty"`
}

// FullName joins first and last name, skipping empty parts.
func (u *User) FullName() string {
	return JoinName(u.FirstName, u.LastName)
}

// JoinName is shared by joined read models that carry the name columns
// without a full User.
func JoinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
