package partydb

import (
	"context"

	"github.com/google/uuid"
)

// PartyUserDB is the interface for party guest database operations.
type PartyUserDB interface {
	CreateGuest(ctx context.Context, guest *PartyUser) error
	GetGuest(ctx context.Context, id uuid.UUID) (*PartyUser, error)
	GetGuestByName(ctx context.Context, displayName string) (*PartyUser, error)
	ListGuests(ctx context.Context) ([]PartyUser, error)
	ListApprovedGuests(ctx context.Context) ([]PartyUser, error)
	UpdateGuestStatus(ctx context.Context, id uuid.UUID, status GuestStatus) error
	CreditWallet(ctx context.Context, id uuid.UUID, amount int64) error
}
