package wagerdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BetStatus is the settlement state of a wager.
type BetStatus string

const (
	BetStatusPending BetStatus = "PENDING"
	BetStatusWon     BetStatus = "WON"
	BetStatusLost    BetStatus = "LOST"
)

// Bet is one wager backing a target user to win a game.
type Bet struct {
	bun.BaseModel `bun:"table:bets,alias:b"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	GameID       uuid.UUID  `bun:"game_id,notnull,type:uuid"`
	BettorID     uuid.UUID  `bun:"bettor_id,notnull,type:uuid"`
	TargetUserID uuid.UUID  `bun:"target_user_id,notnull,type:uuid"`
	Amount       int64      `bun:"amount,notnull"`
	Status       BetStatus  `bun:"status,notnull,default:'PENDING'"`
	Payout       *int64     `bun:"payout,nullzero"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	SettledAt    *time.Time `bun:"settled_at,nullzero"`
}
