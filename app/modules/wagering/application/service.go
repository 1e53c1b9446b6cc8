package wagerservice

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	wagerdb "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// GameOutcome resolves race outcomes for settlement. Implemented by an
// adapter over the leaderboard module.
type GameOutcome interface {
	// Winner returns the rank-1 non-DNF user of a game, or
	// leaderboardservice.ErrNoWinnerDetermined.
	Winner(ctx context.Context, gameID uuid.UUID) (uuid.UUID, error)
}

// WagerService accepts bets against race outcomes and settles payouts.
type WagerService struct {
	BetDB      wagerdb.BetDB
	Outcome    GameOutcome
	EventBus   shared.EventBus
	logger     *slog.Logger
	multiplier int64
}

// NewWagerService creates a new WagerService.
func NewWagerService(db wagerdb.BetDB, outcome GameOutcome, eventBus shared.EventBus, logger *slog.Logger, multiplier int64) *WagerService {
	if multiplier <= 0 {
		multiplier = 2
	}
	return &WagerService{
		BetDB:      db,
		Outcome:    outcome,
		EventBus:   eventBus,
		logger:     logger,
		multiplier: multiplier,
	}
}

// Multiplier returns the fixed payout multiplier for winning bets.
func (s *WagerService) Multiplier() int64 {
	return s.multiplier
}

// ListBetsForGame returns every bet on a game.
func (s *WagerService) ListBetsForGame(ctx context.Context, gameID uuid.UUID) ([]wagerdb.Bet, error) {
	return s.BetDB.ListBetsForGame(ctx, gameID)
}

// ListBetsForUser returns every bet a user has placed.
func (s *WagerService) ListBetsForUser(ctx context.Context, userID uuid.UUID) ([]wagerdb.Bet, error) {
	return s.BetDB.ListBetsForUser(ctx, userID)
}

// CloseBetting stops a game from accepting further bets.
func (s *WagerService) CloseBetting(ctx context.Context, gameID uuid.UUID) error {
	if err := s.BetDB.SetBettingClosed(ctx, gameID, true); err != nil {
		return err
	}
	s.logger.Info("Betting closed", slog.String("game_id", gameID.String()))
	return nil
}
