package wagerdb

import (
	"context"

	"github.com/google/uuid"
)

// BetDB is the interface for wager database operations.
type BetDB interface {
	// PlaceBet debits the bettor's wallet and inserts the bet in one
	// transaction. Returns ErrInsufficientFunds without writing anything
	// when the wallet cannot cover the amount.
	PlaceBet(ctx context.Context, bet *Bet) error

	GetBet(ctx context.Context, id uuid.UUID) (*Bet, error)
	ListBetsForGame(ctx context.Context, gameID uuid.UUID) ([]Bet, error)
	ListBetsForUser(ctx context.Context, userID uuid.UUID) ([]Bet, error)
	ListPendingBets(ctx context.Context, gameID uuid.UUID) ([]Bet, error)

	// SettleBetIfPending claims a PENDING bet with a conditional update and
	// reports whether this caller won the claim. A false return means the
	// bet was already settled and must not be credited again.
	SettleBetIfPending(ctx context.Context, betID uuid.UUID, status BetStatus, payout int64) (bool, error)

	// CreditWallet adds a payout to a bettor's wallet.
	CreditWallet(ctx context.Context, userID uuid.UUID, amount int64) error

	// SetBettingClosed flips the betting flag on a game.
	SetBettingClosed(ctx context.Context, gameID uuid.UUID, closed bool) error
	// IsBettingClosed reads the betting flag on a game.
	IsBettingClosed(ctx context.Context, gameID uuid.UUID) (bool, error)
}
