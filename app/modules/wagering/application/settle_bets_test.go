package wagerservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderboardservice "github.com/FamilyVerse/party-os/app/modules/leaderboard/application"
	wagerdb "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/repositories"
)

func TestWagerService_SettleBets(t *testing.T) {
	gameID := uuid.New()
	winner := uuid.New()
	loser := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	t.Run("pays winners at the multiplier and marks losers", func(t *testing.T) {
		db := NewFakeBetDB()
		db.Wallets[alice] = 1000
		db.Wallets[bob] = 1000
		bus := &FakeEventBus{}
		s := newTestService(db, &FakeOutcome{WinnerID: winner}, bus)

		ctx := context.Background()
		aliceBet, err := s.PlaceBet(ctx, gameID, alice, winner, 100)
		require.NoError(t, err)
		bobBet, err := s.PlaceBet(ctx, gameID, bob, loser, 300)
		require.NoError(t, err)

		result, err := s.SettleBets(ctx, gameID)
		require.NoError(t, err)

		// 1000 - 100 + 100*2 = 1100
		assert.Equal(t, int64(1100), db.Wallets[alice])
		assert.Equal(t, int64(700), db.Wallets[bob])
		assert.Equal(t, 1, result.Won)
		assert.Equal(t, 1, result.Lost)
		assert.Equal(t, int64(200), result.PaidTotal)

		settled, err := db.GetBet(ctx, aliceBet.ID)
		require.NoError(t, err)
		assert.Equal(t, wagerdb.BetStatusWon, settled.Status)
		require.NotNil(t, settled.Payout)
		assert.Equal(t, int64(200), *settled.Payout)

		settled, err = db.GetBet(ctx, bobBet.ID)
		require.NoError(t, err)
		assert.Equal(t, wagerdb.BetStatusLost, settled.Status)

		require.NotEmpty(t, bus.Published)
		assert.Equal(t, "betting.bets.settled", bus.Published[len(bus.Published)-1].Subject)
	})

	t.Run("settlement is idempotent", func(t *testing.T) {
		db := NewFakeBetDB()
		db.Wallets[alice] = 1000
		s := newTestService(db, &FakeOutcome{WinnerID: winner}, &FakeEventBus{})

		ctx := context.Background()
		_, err := s.PlaceBet(ctx, gameID, alice, winner, 100)
		require.NoError(t, err)

		_, err = s.SettleBets(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, int64(1100), db.Wallets[alice])

		second, err := s.SettleBets(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, 0, second.Won)
		assert.Equal(t, 0, second.Lost)
		assert.Equal(t, int64(1100), db.Wallets[alice])
	})

	t.Run("conserves total money minus losing stakes", func(t *testing.T) {
		db := NewFakeBetDB()
		db.Wallets[alice] = 500
		db.Wallets[bob] = 500
		s := newTestService(db, &FakeOutcome{WinnerID: winner}, &FakeEventBus{})

		ctx := context.Background()
		_, err := s.PlaceBet(ctx, gameID, alice, winner, 200)
		require.NoError(t, err)
		_, err = s.PlaceBet(ctx, gameID, bob, loser, 150)
		require.NoError(t, err)

		_, err = s.SettleBets(ctx, gameID)
		require.NoError(t, err)

		// Winning stake returns doubled, losing stake is burned.
		assert.Equal(t, int64(500+200+500-150), db.TotalWallets())
	})

	t.Run("undecided game leaves bets pending", func(t *testing.T) {
		db := NewFakeBetDB()
		db.Wallets[alice] = 1000
		s := newTestService(db, &FakeOutcome{Err: leaderboardservice.ErrNoWinnerDetermined}, &FakeEventBus{})

		ctx := context.Background()
		bet, err := s.PlaceBet(ctx, gameID, alice, winner, 100)
		require.NoError(t, err)

		_, err = s.SettleBets(ctx, gameID)
		assert.ErrorIs(t, err, leaderboardservice.ErrNoWinnerDetermined)

		stored, err := db.GetBet(ctx, bet.ID)
		require.NoError(t, err)
		assert.Equal(t, wagerdb.BetStatusPending, stored.Status)
		assert.Equal(t, int64(900), db.Wallets[alice])
	})
}
