package partyservice

import (
	"context"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/google/uuid"

	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// GuestApprovedPayload is the advisory event published when a guest is approved.
type GuestApprovedPayload struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
}

// OnboardGuest registers a new guest in PENDING status with the configured
// starting wallet balance.
func (s *PartyService) OnboardGuest(ctx context.Context, displayName, pin string) (*partydb.PartyUser, error) {
	if displayName == "" {
		return nil, ErrInvalidName
	}
	if !validPIN(pin) {
		return nil, ErrInvalidPIN
	}

	guest := &partydb.PartyUser{
		DisplayName:   displayName,
		PIN:           pin,
		WalletBalance: s.startingBalance,
		Status:        partydb.GuestStatusPending,
	}
	if err := s.PartyUserDB.CreateGuest(ctx, guest); err != nil {
		s.logger.Error("Failed to onboard guest", slog.String("display_name", displayName), slog.Any("error", err))
		return nil, fmt.Errorf("failed to onboard guest: %w", err)
	}

	s.logger.Info("Guest onboarded", slog.String("display_name", displayName), slog.String("user_id", guest.ID.String()))
	return guest, nil
}

// ApproveGuest transitions a guest to APPROVED and announces it on the party TV stream.
func (s *PartyService) ApproveGuest(ctx context.Context, id uuid.UUID) error {
	if err := s.PartyUserDB.UpdateGuestStatus(ctx, id, partydb.GuestStatusApproved); err != nil {
		return err
	}

	guest, err := s.PartyUserDB.GetGuest(ctx, id)
	if err != nil {
		return err
	}

	if err := s.EventBus.Publish(ctx, shared.StreamPartyTV, "party-tv.guest.approved", GuestApprovedPayload{
		UserID:      guest.ID,
		DisplayName: guest.DisplayName,
	}); err != nil {
		// The approval already committed; the broadcast is best effort.
		s.logger.Error("Failed to publish guest approval", slog.Any("error", err))
	}

	s.logger.Info("Guest approved", slog.String("user_id", id.String()))
	return nil
}

// RejectGuest transitions a guest to REJECTED.
func (s *PartyService) RejectGuest(ctx context.Context, id uuid.UUID) error {
	if err := s.PartyUserDB.UpdateGuestStatus(ctx, id, partydb.GuestStatusRejected); err != nil {
		return err
	}
	s.logger.Info("Guest rejected", slog.String("user_id", id.String()))
	return nil
}

// GetGuest returns a single guest.
func (s *PartyService) GetGuest(ctx context.Context, id uuid.UUID) (*partydb.PartyUser, error) {
	return s.PartyUserDB.GetGuest(ctx, id)
}

// ListGuests returns every guest, newest first.
func (s *PartyService) ListGuests(ctx context.Context) ([]partydb.PartyUser, error) {
	return s.PartyUserDB.ListGuests(ctx)
}

// CreditWallet is the admin top-up path.
func (s *PartyService) CreditWallet(ctx context.Context, id uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}
	if err := s.PartyUserDB.CreditWallet(ctx, id, amount); err != nil {
		return err
	}
	s.logger.Info("Wallet credited", slog.String("user_id", id.String()), slog.Int64("amount", amount))
	return nil
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
