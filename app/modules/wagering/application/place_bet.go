package wagerservice

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	wagerdb "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// BetPlacedPayload is the advisory event published after a bet lands.
type BetPlacedPayload struct {
	BetID        uuid.UUID `json:"bet_id"`
	GameID       uuid.UUID `json:"game_id"`
	BettorID     uuid.UUID `json:"bettor_id"`
	TargetUserID uuid.UUID `json:"target_user_id"`
	Amount       int64     `json:"amount"`
}

// PlaceBet validates a wager and commits the debit + bet insert atomically.
// Failures leave the wallet and bet table untouched.
func (s *WagerService) PlaceBet(ctx context.Context, gameID, bettorID, targetUserID uuid.UUID, amount int64) (*wagerdb.Bet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if bettorID == targetUserID {
		return nil, ErrSelfBet
	}

	closed, err := s.BetDB.IsBettingClosed(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if closed {
		return nil, ErrBettingClosed
	}

	bet := &wagerdb.Bet{
		GameID:       gameID,
		BettorID:     bettorID,
		TargetUserID: targetUserID,
		Amount:       amount,
		Status:       wagerdb.BetStatusPending,
	}
	if err := s.BetDB.PlaceBet(ctx, bet); err != nil {
		if err != wagerdb.ErrInsufficientFunds {
			s.logger.Error("Failed to place bet", slog.Any("error", err))
		}
		return nil, err
	}

	if err := s.EventBus.Publish(ctx, shared.StreamBetting, "betting.bet.placed", BetPlacedPayload{
		BetID:        bet.ID,
		GameID:       gameID,
		BettorID:     bettorID,
		TargetUserID: targetUserID,
		Amount:       amount,
	}); err != nil {
		s.logger.Error("Failed to publish bet event", slog.Any("error", err))
	}

	s.logger.Info("Bet placed",
		slog.String("bet_id", bet.ID.String()),
		slog.String("game_id", gameID.String()),
		slog.Int64("amount", amount),
	)
	return bet, nil
}
