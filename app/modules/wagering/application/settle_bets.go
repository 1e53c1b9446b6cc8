package wagerservice

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	wagerdb "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/repositories"
	"github.com/FamilyVerse/party-os/app/shared"
)

// SettlementResult summarizes one settlement pass over a game.
type SettlementResult struct {
	GameID    uuid.UUID `json:"game_id"`
	Winner    uuid.UUID `json:"winner"`
	Won       int       `json:"won"`
	Lost      int       `json:"lost"`
	PaidTotal int64     `json:"paid_total"`
}

// SettleBets resolves every pending bet on a game against the final
// leaderboard. Each bet is claimed with a status-guarded update before its
// payout is credited, so running settlement twice pays nothing twice.
func (s *WagerService) SettleBets(ctx context.Context, gameID uuid.UUID) (*SettlementResult, error) {
	winner, err := s.Outcome.Winner(ctx, gameID)
	if err != nil {
		return nil, err
	}

	pending, err := s.BetDB.ListPendingBets(ctx, gameID)
	if err != nil {
		return nil, err
	}

	result := &SettlementResult{GameID: gameID, Winner: winner}
	for _, bet := range pending {
		status := wagerdb.BetStatusLost
		var payout int64
		if bet.TargetUserID == winner {
			status = wagerdb.BetStatusWon
			payout = bet.Amount * s.multiplier
		}

		claimed, err := s.BetDB.SettleBetIfPending(ctx, bet.ID, status, payout)
		if err != nil {
			return nil, err
		}
		if !claimed {
			// Another settlement pass beat us to this bet.
			continue
		}

		if status == wagerdb.BetStatusWon {
			if err := s.BetDB.CreditWallet(ctx, bet.BettorID, payout); err != nil {
				return nil, err
			}
			result.Won++
			result.PaidTotal += payout
		} else {
			result.Lost++
		}
	}

	if err := s.EventBus.Publish(ctx, shared.StreamBetting, "betting.bets.settled", result); err != nil {
		s.logger.Error("Failed to publish settlement event", slog.Any("error", err))
	}

	s.logger.Info("Bets settled",
		slog.String("game_id", gameID.String()),
		slog.String("winner", winner.String()),
		slog.Int("won", result.Won),
		slog.Int("lost", result.Lost),
	)
	return result, nil
}
