package wagerservice

import "errors"

var (
	// ErrInvalidAmount is returned for non-positive wager amounts.
	ErrInvalidAmount = errors.New("wager amount must be positive")

	// ErrBettingClosed is returned when the game no longer accepts bets.
	ErrBettingClosed = errors.New("betting is closed for this game")

	// ErrSelfBet is returned when a bettor backs themselves.
	ErrSelfBet = errors.New("cannot bet on yourself")
)
