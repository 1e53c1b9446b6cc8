package partydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrGuestNotFound is returned when a guest id or name matches no row.
var ErrGuestNotFound = errors.New("party guest not found")

// PartyUserDBImpl is the concrete implementation of the PartyUserDB interface using bun.
type PartyUserDBImpl struct {
	DB *bun.DB
}

// CreateGuest inserts a new guest and retrieves the generated ID.
func (db *PartyUserDBImpl) CreateGuest(ctx context.Context, guest *PartyUser) error {
	err := db.DB.NewInsert().
		Model(guest).
		ExcludeColumn("id").
		Returning("id").
		Scan(ctx, &guest.ID)
	if err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}
	return nil
}

// GetGuest retrieves a specific guest by ID.
func (db *PartyUserDBImpl) GetGuest(ctx context.Context, id uuid.UUID) (*PartyUser, error) {
	guest := new(PartyUser)
	err := db.DB.NewSelect().
		Model(guest).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guest: %w", err)
	}
	return guest, nil
}

// GetGuestByName retrieves a guest by display name.
func (db *PartyUserDBImpl) GetGuestByName(ctx context.Context, displayName string) (*PartyUser, error) {
	guest := new(PartyUser)
	err := db.DB.NewSelect().
		Model(guest).
		Where("display_name = ?", displayName).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guest by name: %w", err)
	}
	return guest, nil
}

// ListGuests returns every guest, newest first.
func (db *PartyUserDBImpl) ListGuests(ctx context.Context) ([]PartyUser, error) {
	var guests []PartyUser
	err := db.DB.NewSelect().
		Model(&guests).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

// ListApprovedGuests returns guests with APPROVED status.
func (db *PartyUserDBImpl) ListApprovedGuests(ctx context.Context) ([]PartyUser, error) {
	var guests []PartyUser
	err := db.DB.NewSelect().
		Model(&guests).
		Where("status = ?", GuestStatusApproved).
		Order("display_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved guests: %w", err)
	}
	return guests, nil
}

// UpdateGuestStatus transitions a guest between PENDING/APPROVED/REJECTED.
func (db *PartyUserDBImpl) UpdateGuestStatus(ctx context.Context, id uuid.UUID, status GuestStatus) error {
	res, err := db.DB.NewUpdate().
		Model((*PartyUser)(nil)).
		Set("status = ?", status).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update guest status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// CreditWallet adds to a guest's wallet balance. Admin top-ups only; bet
// debits go through the wagering repository's conditional update.
func (db *PartyUserDBImpl) CreditWallet(ctx context.Context, id uuid.UUID, amount int64) error {
	res, err := db.DB.NewUpdate().
		Model((*PartyUser)(nil)).
		Set("wallet_balance = wallet_balance + ?", amount).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrGuestNotFound
	}
	return nil
}
