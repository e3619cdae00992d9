package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract links a tenant, an owner and an apartment for a lease term.
// IsActive marks the lease that currently occupies the apartment.
type Contract struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	ApartmentID uuid.UUID       `json:"apartment_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	RentAmount  decimal.Decimal `json:"rent_amount"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ContractListing joins a contract through apartment -> building and the
// tenant user.
type ContractListing struct {
	Contract
	TenantFirstName string    `json:"-"`
	TenantLastName  string    `json:"-"`
	UnitNumber      string    `json:"unit_number"`
	BuildingID      uuid.UUID `json:"building_id"`
	BuildingName    string    `json:"building_name"`
}

// TenantListing is one row of the apartment -> building -> contract -> user
// join. A tenant with several contracts appears once per contract.
type TenantListing struct {
	Tenant       User      `json:"tenant"`
	ApartmentID  uuid.UUID `json:"apartment_id"`
	UnitNumber   string    `json:"unit_number"`
	BuildingID   uuid.UUID `json:"building_id"`
	BuildingName string    `json:"building_name"`
	ContractID   uuid.UUID `json:"contract_id"`
	LeaseEnd     time.Time `json:"lease_end"`
}

func (c *ContractListing) TenantName() string {
	return JoinName(c.TenantFirstName, c.TenantLastName)
}
