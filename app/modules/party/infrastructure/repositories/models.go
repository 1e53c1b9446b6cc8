package partydb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GuestStatus represents the onboarding state of a party guest.
type GuestStatus string

const (
	GuestStatusPending  GuestStatus = "PENDING"
	GuestStatusApproved GuestStatus = "APPROVED"
	GuestStatusRejected GuestStatus = "REJECTED"
)

// PartyUser represents a party guest with a wallet.
type PartyUser struct {
	bun.BaseModel `bun:"table:party_users,alias:pu"`

	ID            uuid.UUID   `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	DisplayName   string      `bun:"display_name,notnull,unique"`
	PIN           string      `bun:"pin,notnull"`
	WalletBalance int64       `bun:"wallet_balance,notnull,default:0"`
	Status        GuestStatus `bun:"status,notnull,default:'PENDING'"`
	CreatedAt     time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time   `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
