package wagerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrInsufficientFunds is returned when a wallet cannot cover a bet.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBetNotFound is returned when a bet id matches no row.
	ErrBetNotFound = errors.New("bet not found")

	// ErrGameNotFound is returned when a game id matches no row.
	ErrGameNotFound = errors.New("party game not found")
)

// BetDBImpl is the concrete implementation of the BetDB interface using bun.
type BetDBImpl struct {
	DB *bun.DB
}

// PlaceBet debits the wallet and inserts the bet in one transaction.
// The debit is a single conditional update so two concurrent bets against a
// near-empty wallet cannot both pass a separate balance check.
func (db *BetDBImpl) PlaceBet(ctx context.Context, bet *Bet) error {
	err := db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Table("party_users").
			Set("wallet_balance = wallet_balance - ?", bet.Amount).
			Set("updated_at = current_timestamp").
			Where("id = ?", bet.BettorID).
			Where("wallet_balance >= ?", bet.Amount).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to debit wallet: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if rows == 0 {
			return ErrInsufficientFunds
		}

		if err := tx.NewInsert().
			Model(bet).
			ExcludeColumn("id").
			Returning("id").
			Scan(ctx, &bet.ID); err != nil {
			return fmt.Errorf("failed to insert bet: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// GetBet retrieves a specific bet by ID.
func (db *BetDBImpl) GetBet(ctx context.Context, id uuid.UUID) (*Bet, error) {
	bet := new(Bet)
	err := db.DB.NewSelect().
		Model(bet).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bet: %w", err)
	}
	return bet, nil
}

// ListBetsForGame returns every bet on a game, newest first.
func (db *BetDBImpl) ListBetsForGame(ctx context.Context, gameID uuid.UUID) ([]Bet, error) {
	var bets []Bet
	err := db.DB.NewSelect().
		Model(&bets).
		Where("game_id = ?", gameID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets for game: %w", err)
	}
	return bets, nil
}

// ListBetsForUser returns every bet a user has placed, newest first.
func (db *BetDBImpl) ListBetsForUser(ctx context.Context, userID uuid.UUID) ([]Bet, error) {
	var bets []Bet
	err := db.DB.NewSelect().
		Model(&bets).
		Where("bettor_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets for user: %w", err)
	}
	return bets, nil
}

// ListPendingBets returns the unsettled bets on a game.
func (db *BetDBImpl) ListPendingBets(ctx context.Context, gameID uuid.UUID) ([]Bet, error) {
	var bets []Bet
	err := db.DB.NewSelect().
		Model(&bets).
		Where("game_id = ?", gameID).
		Where("status = ?", BetStatusPending).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending bets: %w", err)
	}
	return bets, nil
}

// SettleBetIfPending claims a PENDING bet. The status guard in the WHERE
// clause makes a second concurrent settlement affect zero rows instead of
// double-crediting.
func (db *BetDBImpl) SettleBetIfPending(ctx context.Context, betID uuid.UUID, status BetStatus, payout int64) (bool, error) {
	now := time.Now()
	res, err := db.DB.NewUpdate().
		Model((*Bet)(nil)).
		Set("status = ?", status).
		Set("payout = ?", payout).
		Set("settled_at = ?", now).
		Where("id = ?", betID).
		Where("status = ?", BetStatusPending).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to settle bet: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows > 0, nil
}

// CreditWallet adds a payout to a bettor's wallet.
func (db *BetDBImpl) CreditWallet(ctx context.Context, userID uuid.UUID, amount int64) error {
	_, err := db.DB.NewUpdate().
		Table("party_users").
		Set("wallet_balance = wallet_balance + ?", amount).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	return nil
}

// SetBettingClosed flips the betting flag on a game.
func (db *BetDBImpl) SetBettingClosed(ctx context.Context, gameID uuid.UUID, closed bool) error {
	res, err := db.DB.NewUpdate().
		Table("party_games").
		Set("betting_closed = ?", closed).
		Set("updated_at = current_timestamp").
		Where("id = ?", gameID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update betting flag: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrGameNotFound
	}
	return nil
}

// IsBettingClosed reads the betting flag on a game.
func (db *BetDBImpl) IsBettingClosed(ctx context.Context, gameID uuid.UUID) (bool, error) {
	var closed bool
	err := db.DB.NewSelect().
		Table("party_games").
		Column("betting_closed").
		Where("id = ?", gameID).
		Scan(ctx, &closed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrGameNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to read betting flag: %w", err)
	}
	return closed, nil
}
